package db

import (
	"fmt"
	"log"

	"github.com/nimbusgrid/platform-go/internal/config"
	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init opens the database from config, migrates the schema and seeds the
// pricing catalog.
func Init() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost, config.DbPort, config.DbUser, config.DbPassword, config.DbName)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return InitWithGormDB(gdb)
}

// InitWithGormDB migrates and seeds an already-open connection. Tests use
// this to point the layer at a container database.
func InitWithGormDB(gdb *gorm.DB) (*gorm.DB, error) {
	if err := gdb.AutoMigrate(
		&project.Project{},
		&job.Job{},
		&monitoring.Sample{},
		&pricing.HardwarePricing{},
		&user.Profile{},
		&user.APIKey{},
		&user.PaymentMethod{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	if err := seedPricing(gdb); err != nil {
		return nil, err
	}
	DB = gdb
	return gdb, nil
}

// seedPricing fills the catalog on an empty database so job submission has
// rates to fall back on. Existing rows are left alone.
func seedPricing(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&pricing.HardwarePricing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count pricing: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows := []pricing.HardwarePricing{
		{HardwareType: "cpu-small", Region: "us-east-1", PricePerHour: 0.12, Availability: 100},
		{HardwareType: "cpu-small", Region: "eu-west-1", PricePerHour: 0.14, Availability: 100},
		{HardwareType: "cpu-large", Region: "us-east-1", PricePerHour: 0.48, Availability: 95},
		{HardwareType: "cpu-large", Region: "eu-west-1", PricePerHour: 0.52, Availability: 90},
		{HardwareType: "gpu-t4", Region: "us-east-1", PricePerHour: 0.95, Availability: 80},
		{HardwareType: "gpu-t4", Region: "eu-west-1", PricePerHour: 1.05, Availability: 75},
		{HardwareType: "gpu-a100", Region: "us-east-1", PricePerHour: 3.20, Availability: 40},
		{HardwareType: "gpu-a100", Region: "eu-west-1", PricePerHour: 3.45, Availability: 35},
		{HardwareType: "gpu-h100", Region: "us-east-1", PricePerHour: 6.75, Availability: 20},
	}
	if err := gdb.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed pricing: %w", err)
	}
	log.Printf("seeded %d pricing rows", len(rows))
	return nil
}
