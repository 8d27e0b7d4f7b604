package repository

import (
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"gorm.io/gorm"
)

// MonitoringRepo defines data access for monitoring samples.
type MonitoringRepo interface {
	Latest(jobID uint) (*monitoring.Sample, error)
	Insert(s *monitoring.Sample) error
	WithTx(tx *gorm.DB) MonitoringRepo
}

type DBMonitoringRepo struct {
	db *gorm.DB
}

func NewMonitoringRepo(db *gorm.DB) *DBMonitoringRepo {
	return &DBMonitoringRepo{db: db}
}

// Latest returns the most recent sample for the job, or ErrNotFound when the
// job has never reported.
func (r *DBMonitoringRepo) Latest(jobID uint) (*monitoring.Sample, error) {
	var s monitoring.Sample
	err := r.db.
		Where("job_id = ?", jobID).
		Order("timestamp DESC").
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *DBMonitoringRepo) Insert(s *monitoring.Sample) error {
	return r.db.Create(s).Error
}

func (r *DBMonitoringRepo) WithTx(tx *gorm.DB) MonitoringRepo {
	if tx == nil {
		return r
	}
	return &DBMonitoringRepo{db: tx}
}
