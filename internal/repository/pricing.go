package repository

import (
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"gorm.io/gorm"
)

// PricingRepo defines read access to the hardware pricing reference table.
type PricingRepo interface {
	List() ([]pricing.HardwarePricing, error)
	GetByTypeAndRegion(hardwareType, region string) (*pricing.HardwarePricing, error)
}

type DBPricingRepo struct {
	db *gorm.DB
}

func NewPricingRepo(db *gorm.DB) *DBPricingRepo {
	return &DBPricingRepo{db: db}
}

func (r *DBPricingRepo) List() ([]pricing.HardwarePricing, error) {
	var rows []pricing.HardwarePricing
	err := r.db.Order("hardware_type ASC, region ASC").Find(&rows).Error
	return rows, err
}

func (r *DBPricingRepo) GetByTypeAndRegion(hardwareType, region string) (*pricing.HardwarePricing, error) {
	var row pricing.HardwarePricing
	err := r.db.
		Where("hardware_type = ? AND region = ?", hardwareType, region).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}
