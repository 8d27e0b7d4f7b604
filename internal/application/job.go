package application

import (
	"errors"
	"strings"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"gorm.io/datatypes"
)

type JobService struct {
	Repos *repository.Repos
}

func NewJobService(repos *repository.Repos) *JobService {
	return &JobService{Repos: repos}
}

// List returns every job the user can see, newest first. Visibility runs
// through project ownership; there is no direct job-to-user link.
func (s *JobService) List(userID string) ([]job.Job, error) {
	return s.Repos.Job.ListByUserID(userID)
}

func (s *JobService) ListByProject(userID string, projectID uint) ([]job.Job, error) {
	if _, err := s.Repos.Project.GetOwned(projectID, userID); err != nil {
		return nil, err
	}
	return s.Repos.Job.ListByProjectID(projectID)
}

// Create submits a new job in pending state. When the creator omits the
// hourly rate, the hardware pricing table supplies it.
func (s *JobService) Create(userID string, input job.CreateJobInput) (*job.Job, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.AutoScaling != nil && input.AutoScaling.MinInstances > input.AutoScaling.MaxInstances {
		return nil, ErrAutoScaleBounds
	}
	if _, err := s.Repos.Project.GetOwned(input.ProjectID, userID); err != nil {
		return nil, err
	}

	costPerHour := 0.0
	if input.CostPerHour != nil {
		costPerHour = *input.CostPerHour
	} else {
		rate, err := s.Repos.Pricing.GetByTypeAndRegion(input.HardwareType, input.Region)
		if err == nil {
			costPerHour = rate.PricePerHour
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	notifications := job.NotificationSettings{}
	if input.Notifications != nil {
		notifications = *input.Notifications
	}
	autoScaling := job.DefaultAutoScaling()
	if input.AutoScaling != nil {
		autoScaling = *input.AutoScaling
	}

	projectID := input.ProjectID
	j := &job.Job{
		ProjectID:     &projectID,
		Name:          input.Name,
		Status:        job.StatusPending,
		Progress:      0,
		HardwareType:  input.HardwareType,
		Region:        input.Region,
		CostPerHour:   costPerHour,
		Notifications: datatypes.NewJSONType(notifications),
		AutoScaling:   datatypes.NewJSONType(autoScaling),
	}
	if input.Description != nil {
		j.Description = *input.Description
	}
	if err := s.Repos.Job.Create(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Update applies a partial update. Status transitions take the same path as
// settings edits: callers send status plus whatever timestamps the
// transition implies.
func (s *JobService) Update(userID string, id uint, input job.UpdateJobInput) error {
	if _, err := s.Repos.Job.GetOwned(id, userID); err != nil {
		return err
	}
	if input.Status != nil && !input.Status.Valid() {
		return ErrInvalidStatus
	}
	if input.Progress != nil && (*input.Progress < 0 || *input.Progress > 100) {
		return ErrInvalidProgress
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ErrNameRequired
	}
	if input.AutoScaling != nil && input.AutoScaling.MinInstances > input.AutoScaling.MaxInstances {
		return ErrAutoScaleBounds
	}

	fields := input.Fields()
	if input.Notifications != nil {
		fields["notifications"] = datatypes.NewJSONType(*input.Notifications)
	}
	if input.AutoScaling != nil {
		fields["auto_scaling"] = datatypes.NewJSONType(*input.AutoScaling)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.Repos.Job.Update(id, fields)
}

// Delete removes the job and its monitoring samples.
func (s *JobService) Delete(userID string, id uint) error {
	if _, err := s.Repos.Job.GetOwned(id, userID); err != nil {
		return err
	}
	return s.Repos.Job.Delete(id)
}

// GetOwned resolves a job visible to the user, for callers that need an
// ownership check before touching related rows.
func (s *JobService) GetOwned(userID string, id uint) (*job.Job, error) {
	return s.Repos.Job.GetOwned(id, userID)
}
