package application

import (
	"errors"

	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/internal/repository"
)

type MonitoringService struct {
	Repos *repository.Repos
}

func NewMonitoringService(repos *repository.Repos) *MonitoringService {
	return &MonitoringService{Repos: repos}
}

// Latest returns the most recent sample for a job the user can see, or nil
// when the job has never reported.
func (s *MonitoringService) Latest(userID string, jobID uint) (*monitoring.Sample, error) {
	if _, err := s.Repos.Job.GetOwned(jobID, userID); err != nil {
		return nil, err
	}
	sample, err := s.Repos.Monitoring.Latest(jobID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return sample, err
}

// Insert appends one sample. Partial telemetry is valid: any subset of
// metric fields may be present.
func (s *MonitoringService) Insert(userID string, input monitoring.InsertSampleInput) error {
	if _, err := s.Repos.Job.GetOwned(input.JobID, userID); err != nil {
		return err
	}
	sample := &monitoring.Sample{
		JobID:       input.JobID,
		CPUUsage:    input.CPUUsage,
		MemoryUsage: input.MemoryUsage,
		GPUUsage:    input.GPUUsage,
		NetworkIn:   input.NetworkIn,
		NetworkOut:  input.NetworkOut,
		DiskUsage:   input.DiskUsage,
	}
	return s.Repos.Monitoring.Insert(sample)
}
