package pricing

import "time"

// HardwarePricing is reference data: the hourly rate and availability for a
// hardware type in a region. There is no in-band write path; rows are seeded
// at startup and refreshed out of band.
type HardwarePricing struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HardwareType string    `gorm:"size:100;not null;index:idx_pricing_type_region,priority:1" json:"hardwareType"`
	Region       string    `gorm:"size:100;not null;index:idx_pricing_type_region,priority:2" json:"region"`
	PricePerHour float64   `gorm:"type:decimal(8,4);not null" json:"pricePerHour"`
	Availability float64   `gorm:"type:decimal(5,2);default:100" json:"availability"`
	LastUpdated  time.Time `gorm:"autoUpdateTime" json:"lastUpdated"`
}

// TableName specifies the database table name
func (HardwarePricing) TableName() string {
	return "hardware_pricing"
}
