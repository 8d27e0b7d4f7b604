package application

import (
	"strings"

	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/repository"
)

// DefaultProjectName is the project created implicitly for first-time users.
const DefaultProjectName = "Default Project"

type ProjectService struct {
	Repos *repository.Repos
}

func NewProjectService(repos *repository.Repos) *ProjectService {
	return &ProjectService{Repos: repos}
}

// List returns the user's projects, default first. A user with no projects
// gets a default project created on the spot so the dashboard always has a
// home for new jobs.
func (s *ProjectService) List(userID string) ([]project.Project, error) {
	projects, err := s.Repos.Project.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(projects) > 0 {
		return projects, nil
	}

	def := &project.Project{
		Name:      DefaultProjectName,
		UserID:    userID,
		IsDefault: true,
	}
	if err := s.Repos.Project.Create(def); err != nil {
		return nil, err
	}
	return []project.Project{*def}, nil
}

func (s *ProjectService) Create(userID string, input project.CreateProjectInput) (*project.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	p := &project.Project{
		Name:   input.Name,
		UserID: userID,
		Budget: input.Budget,
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if err := s.Repos.Project.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update to a project the user owns. A foreign or
// missing id surfaces as repository.ErrNotFound.
func (s *ProjectService) Update(userID string, id uint, input project.UpdateProjectInput) error {
	if _, err := s.Repos.Project.GetOwned(id, userID); err != nil {
		return err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ErrNameRequired
	}
	fields := input.Fields()
	if len(fields) == 0 {
		return nil
	}
	return s.Repos.Project.Update(id, fields)
}

// Delete removes the project and cascades to its jobs and their monitoring
// samples. The default project is refused.
func (s *ProjectService) Delete(userID string, id uint) error {
	p, err := s.Repos.Project.GetOwned(id, userID)
	if err != nil {
		return err
	}
	if p.IsDefault {
		return ErrDefaultProject
	}
	return s.Repos.Project.Delete(id)
}
