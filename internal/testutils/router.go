package testutils

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nimbusgrid/platform-go/internal/api/middleware"
	"github.com/nimbusgrid/platform-go/internal/api/routes"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/config"
	"github.com/nimbusgrid/platform-go/internal/repository"
)

// SetupRouter builds the full API router around the given repositories with
// a deterministic JWT secret.
func SetupRouter(repos *repository.Repos) *gin.Engine {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	config.LoadConfig()
	middleware.Init()
	services := application.New(repos)
	return routes.SetupRouter(services)
}

// TokenFor issues a short-lived token for the given user.
func TokenFor(userID, email string) string {
	token, err := middleware.GenerateToken(userID, email, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}
