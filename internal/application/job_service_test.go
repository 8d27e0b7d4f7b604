package application_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"github.com/nimbusgrid/platform-go/internal/repository/mock"
)

func setupJobMocks(t *testing.T) (*application.JobService, *mock.MockJobRepo, *mock.MockProjectRepo, *mock.MockPricingRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockJob := mock.NewMockJobRepo(ctrl)
	mockProject := mock.NewMockProjectRepo(ctrl)
	mockPricing := mock.NewMockPricingRepo(ctrl)
	repos := &repository.Repos{Job: mockJob, Project: mockProject, Pricing: mockPricing}
	return application.NewJobService(repos), mockJob, mockProject, mockPricing
}

func TestJobCreate(t *testing.T) {
	input := job.CreateJobInput{
		ProjectID:    5,
		Name:         "train-resnet",
		HardwareType: "gpu-a100",
		Region:       "us-east-1",
	}

	t.Run("starts pending with zero progress", func(t *testing.T) {
		svc, mockJob, mockProject, mockPricing := setupJobMocks(t)
		mockProject.EXPECT().GetOwned(uint(5), "u1").Return(project.Project{ID: 5, UserID: "u1"}, nil)
		mockPricing.EXPECT().GetByTypeAndRegion("gpu-a100", "us-east-1").
			Return(&pricing.HardwarePricing{PricePerHour: 3.20}, nil)
		mockJob.EXPECT().Create(gomock.Any()).Do(func(j *job.Job) {
			if j.Status != job.StatusPending || j.Progress != 0 {
				t.Fatalf("new job must be pending at 0%%, got %s/%d", j.Status, j.Progress)
			}
			if j.CostPerHour != 3.20 {
				t.Fatalf("expected rate from pricing table, got %v", j.CostPerHour)
			}
			if j.AutoScaling.Data() != job.DefaultAutoScaling() {
				t.Fatalf("expected default auto scaling, got %+v", j.AutoScaling.Data())
			}
			j.ID = 11
		}).Return(nil)

		created, err := svc.Create("u1", input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != 11 {
			t.Fatalf("expected assigned id, got %d", created.ID)
		}
	})

	t.Run("explicit rate wins over pricing table", func(t *testing.T) {
		svc, mockJob, mockProject, _ := setupJobMocks(t)
		rate := 1.5
		in := input
		in.CostPerHour = &rate
		mockProject.EXPECT().GetOwned(uint(5), "u1").Return(project.Project{ID: 5, UserID: "u1"}, nil)
		mockJob.EXPECT().Create(gomock.Any()).Do(func(j *job.Job) {
			if j.CostPerHour != 1.5 {
				t.Fatalf("expected explicit rate, got %v", j.CostPerHour)
			}
		}).Return(nil)

		if _, err := svc.Create("u1", in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown hardware falls back to zero rate", func(t *testing.T) {
		svc, mockJob, mockProject, mockPricing := setupJobMocks(t)
		mockProject.EXPECT().GetOwned(uint(5), "u1").Return(project.Project{ID: 5, UserID: "u1"}, nil)
		mockPricing.EXPECT().GetByTypeAndRegion("gpu-a100", "us-east-1").
			Return(nil, repository.ErrNotFound)
		mockJob.EXPECT().Create(gomock.Any()).Do(func(j *job.Job) {
			if j.CostPerHour != 0 {
				t.Fatalf("expected zero rate, got %v", j.CostPerHour)
			}
		}).Return(nil)

		if _, err := svc.Create("u1", input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc, _, _, _ := setupJobMocks(t)
		in := input
		in.Name = " "
		if _, err := svc.Create("u1", in); !errors.Is(err, application.ErrNameRequired) {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("rejects inverted auto scaling bounds", func(t *testing.T) {
		svc, _, _, _ := setupJobMocks(t)
		in := input
		in.AutoScaling = &job.AutoScalingConfig{Enabled: true, MinInstances: 4, MaxInstances: 2}
		if _, err := svc.Create("u1", in); !errors.Is(err, application.ErrAutoScaleBounds) {
			t.Fatalf("expected ErrAutoScaleBounds, got %v", err)
		}
	})

	t.Run("foreign project is not found", func(t *testing.T) {
		svc, _, mockProject, _ := setupJobMocks(t)
		mockProject.EXPECT().GetOwned(uint(5), "u2").Return(project.Project{}, repository.ErrNotFound)
		if _, err := svc.Create("u2", input); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestJobUpdate(t *testing.T) {
	owned := &job.Job{ID: 9, Status: job.StatusPending}

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, mockJob, _, _ := setupJobMocks(t)
		mockJob.EXPECT().GetOwned(uint(9), "u1").Return(owned, nil)
		bad := job.Status("archived")
		err := svc.Update("u1", 9, job.UpdateJobInput{Status: &bad})
		if !errors.Is(err, application.ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("rejects progress out of range", func(t *testing.T) {
		svc, mockJob, _, _ := setupJobMocks(t)
		mockJob.EXPECT().GetOwned(uint(9), "u1").Return(owned, nil)
		p := 120
		err := svc.Update("u1", 9, job.UpdateJobInput{Progress: &p})
		if !errors.Is(err, application.ErrInvalidProgress) {
			t.Fatalf("expected ErrInvalidProgress, got %v", err)
		}
	})

	t.Run("maps partial update to columns", func(t *testing.T) {
		svc, mockJob, _, _ := setupJobMocks(t)
		mockJob.EXPECT().GetOwned(uint(9), "u1").Return(owned, nil)
		status := job.StatusRunning
		p := 10
		mockJob.EXPECT().Update(uint(9), gomock.Any()).Do(func(_ uint, fields map[string]interface{}) {
			if fields["status"] != job.StatusRunning || fields["progress"] != 10 {
				t.Fatalf("unexpected fields %+v", fields)
			}
			if _, ok := fields["name"]; ok {
				t.Fatal("omitted fields must not be updated")
			}
		}).Return(nil)

		err := svc.Update("u1", 9, job.UpdateJobInput{Status: &status, Progress: &p})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		svc, mockJob, _, _ := setupJobMocks(t)
		mockJob.EXPECT().GetOwned(uint(9), "u1").Return(owned, nil)
		if err := svc.Update("u1", 9, job.UpdateJobInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestJobDelete(t *testing.T) {
	t.Run("foreign job is not found", func(t *testing.T) {
		svc, mockJob, _, _ := setupJobMocks(t)
		mockJob.EXPECT().GetOwned(uint(9), "u2").Return(nil, repository.ErrNotFound)
		if err := svc.Delete("u2", 9); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("deletes owned job", func(t *testing.T) {
		svc, mockJob, _, _ := setupJobMocks(t)
		mockJob.EXPECT().GetOwned(uint(9), "u1").Return(&job.Job{ID: 9}, nil)
		mockJob.EXPECT().Delete(uint(9)).Return(nil)
		if err := svc.Delete("u1", 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
