package application

import "github.com/nimbusgrid/platform-go/internal/repository"

// Services bundles the business-logic layer.
type Services struct {
	Project    *ProjectService
	Job        *JobService
	Monitoring *MonitoringService
	Pricing    *PricingService
	User       *UserService
}

func New(repos *repository.Repos) *Services {
	return &Services{
		Project:    NewProjectService(repos),
		Job:        NewJobService(repos),
		Monitoring: NewMonitoringService(repos),
		Pricing:    NewPricingService(repos),
		User:       NewUserService(repos),
	}
}
