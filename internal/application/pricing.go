package application

import (
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"github.com/nimbusgrid/platform-go/internal/repository"
)

type PricingService struct {
	Repos *repository.Repos
}

func NewPricingService(repos *repository.Repos) *PricingService {
	return &PricingService{Repos: repos}
}

func (s *PricingService) List() ([]pricing.HardwarePricing, error) {
	return s.Repos.Pricing.List()
}
