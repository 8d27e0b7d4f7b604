package application_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"github.com/nimbusgrid/platform-go/internal/repository/mock"
)

func setupProjectMocks(t *testing.T) (*application.ProjectService, *mock.MockProjectRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProject := mock.NewMockProjectRepo(ctrl)
	repos := &repository.Repos{Project: mockProject}
	return application.NewProjectService(repos), mockProject
}

func TestProjectList(t *testing.T) {
	t.Run("returns stored projects", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		stored := []project.Project{
			{ID: 1, Name: "Default Project", UserID: "u1", IsDefault: true},
			{ID: 2, Name: "research", UserID: "u1"},
		}
		mockProject.EXPECT().ListByUserID("u1").Return(stored, nil)

		got, err := svc.List("u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || !got[0].IsDefault {
			t.Fatalf("expected default-first list, got %+v", got)
		}
	})

	t.Run("bootstraps default project for new user", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		mockProject.EXPECT().ListByUserID("u1").Return(nil, nil)
		mockProject.EXPECT().Create(gomock.Any()).Do(func(p *project.Project) {
			if p.Name != application.DefaultProjectName || !p.IsDefault || p.UserID != "u1" {
				t.Fatalf("unexpected bootstrap project %+v", p)
			}
			p.ID = 1
		}).Return(nil)

		got, err := svc.List("u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("expected the bootstrapped project, got %+v", got)
		}
	})
}

func TestProjectCreate(t *testing.T) {
	t.Run("rejects blank name", func(t *testing.T) {
		svc, _ := setupProjectMocks(t)
		_, err := svc.Create("u1", project.CreateProjectInput{Name: "   "})
		if !errors.Is(err, application.ErrNameRequired) {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("persists owner from session", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		desc := "training runs"
		mockProject.EXPECT().Create(gomock.Any()).Do(func(p *project.Project) {
			if p.UserID != "u1" || p.Description != desc {
				t.Fatalf("unexpected project %+v", p)
			}
			p.ID = 7
		}).Return(nil)

		p, err := svc.Create("u1", project.CreateProjectInput{Name: "ml", Description: &desc})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != 7 {
			t.Fatalf("expected assigned id, got %d", p.ID)
		}
	})
}

func TestProjectUpdate(t *testing.T) {
	t.Run("maps only provided fields", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		name := "renamed"
		mockProject.EXPECT().GetOwned(uint(3), "u1").Return(project.Project{ID: 3, UserID: "u1"}, nil)
		mockProject.EXPECT().Update(uint(3), gomock.Any()).Do(func(_ uint, fields map[string]interface{}) {
			if len(fields) != 1 || fields["name"] != "renamed" {
				t.Fatalf("unexpected fields %+v", fields)
			}
		}).Return(nil)

		if err := svc.Update("u1", 3, project.UpdateProjectInput{Name: &name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("foreign project surfaces as not found", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		mockProject.EXPECT().GetOwned(uint(3), "u2").Return(project.Project{}, repository.ErrNotFound)

		err := svc.Update("u2", 3, project.UpdateProjectInput{})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestProjectDelete(t *testing.T) {
	t.Run("refuses the default project", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		mockProject.EXPECT().GetOwned(uint(1), "u1").
			Return(project.Project{ID: 1, UserID: "u1", IsDefault: true}, nil)

		err := svc.Delete("u1", 1)
		if !errors.Is(err, application.ErrDefaultProject) {
			t.Fatalf("expected ErrDefaultProject, got %v", err)
		}
	})

	t.Run("cascades through the repository", func(t *testing.T) {
		svc, mockProject := setupProjectMocks(t)
		mockProject.EXPECT().GetOwned(uint(2), "u1").Return(project.Project{ID: 2, UserID: "u1"}, nil)
		mockProject.EXPECT().Delete(uint(2)).Return(nil)

		if err := svc.Delete("u1", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
