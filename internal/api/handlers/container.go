package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"github.com/nimbusgrid/platform-go/pkg/response"
)

// Handlers bundles the HTTP layer.
type Handlers struct {
	Project    *ProjectHandler
	Job        *JobHandler
	Monitoring *MonitoringHandler
	Pricing    *PricingHandler
	User       *UserHandler
}

func New(services *application.Services) *Handlers {
	return &Handlers{
		Project:    NewProjectHandler(services.Project),
		Job:        NewJobHandler(services.Job),
		Monitoring: NewMonitoringHandler(services.Monitoring),
		Pricing:    NewPricingHandler(services.Pricing),
		User:       NewUserHandler(services.User),
	}
}

// fail maps a service error to the response contract: missing rows become
// 404, validation errors 400 with their message, anything else is logged
// and collapsed to a generic 500 so storage detail never leaks.
func fail(c *gin.Context, err error, notFoundMsg, genericMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: notFoundMsg})
	case errors.Is(err, application.ErrDefaultProject),
		errors.Is(err, application.ErrNameRequired),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidProgress),
		errors.Is(err, application.ErrInvalidAmount),
		errors.Is(err, application.ErrInvalidType),
		errors.Is(err, application.ErrAutoScaleBounds):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("%s: %v", genericMsg, err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: genericMsg})
	}
}
