package repository

import "gorm.io/gorm"

// Repos bundles one repository per aggregate, sharing a gorm handle.
type Repos struct {
	Project    ProjectRepo
	Job        JobRepo
	Monitoring MonitoringRepo
	Pricing    PricingRepo
	User       UserRepo
}

func New(db *gorm.DB) *Repos {
	return &Repos{
		Project:    NewProjectRepo(db),
		Job:        NewJobRepo(db),
		Monitoring: NewMonitoringRepo(db),
		Pricing:    NewPricingRepo(db),
		User:       NewUserRepo(db),
	}
}
