// Package dashboard holds the client-side session cache backing the UI:
// the user's projects and jobs, the selected-job pointer, and write-through
// mutation methods. The server stays the source of truth; local state only
// ever reflects confirmed writes.
package dashboard

import (
	"context"
	"sync"

	"gorm.io/datatypes"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/pkg/client"
)

// Snapshot is an immutable view of the store for one render pass.
type Snapshot struct {
	Projects      []project.Project
	Jobs          []job.Job
	SelectedJobID *uint
	IsLoading     bool
}

// Store caches one authenticated session's projects and jobs.
type Store struct {
	api *client.Client

	mu            sync.Mutex
	projects      []project.Project
	jobs          []job.Job
	selectedJobID *uint
	loading       bool

	listeners []func()
}

func NewStore(api *client.Client) *Store {
	return &Store{api: api}
}

// Subscribe registers a callback invoked after every state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Snapshot returns a copy of current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Projects:  append([]project.Project(nil), s.projects...),
		Jobs:      append([]job.Job(nil), s.jobs...),
		IsLoading: s.loading,
	}
	if s.selectedJobID != nil {
		id := *s.selectedJobID
		snap.SelectedJobID = &id
	}
	return snap
}

// SelectDefaultJob picks the job selection for a fresh job list: the first
// job, or nil when the list is empty. Initialization and post-delete
// reconciliation both go through here.
func SelectDefaultJob(jobs []job.Job) *uint {
	if len(jobs) == 0 {
		return nil
	}
	id := jobs[0].ID
	return &id
}

// Load fetches projects and jobs concurrently and populates the cache.
// If either fetch fails the store stays empty; there is no partial
// population. Selection defaults to the first job when unset.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	var (
		wg       sync.WaitGroup
		projects []project.Project
		jobs     []job.Job
		pErr     error
		jErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		projects, pErr = s.api.ListProjects(ctx)
	}()
	go func() {
		defer wg.Done()
		jobs, jErr = s.api.ListJobs(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	s.loading = false
	if pErr != nil || jErr != nil {
		s.mu.Unlock()
		s.notify()
		if pErr != nil {
			return pErr
		}
		return jErr
	}
	s.projects = projects
	s.jobs = jobs
	if s.selectedJobID == nil {
		s.selectedJobID = SelectDefaultJob(jobs)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// SelectJob moves the detail-pane selection. Selecting an id not present in
// the cache is ignored.
func (s *Store) SelectJob(id uint) {
	s.mu.Lock()
	found := false
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			found = true
			break
		}
	}
	if found {
		s.selectedJobID = &id
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
}

// GetJobsByProject filters the cached jobs by project. Pure, no I/O.
func (s *Store) GetJobsByProject(projectID uint) []job.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []job.Job
	for _, j := range s.jobs {
		if j.ProjectID != nil && *j.ProjectID == projectID {
			out = append(out, j)
		}
	}
	return out
}

func (s *Store) CreateProject(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	p, err := s.api.CreateProject(ctx, input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.projects = append(s.projects, *p)
	s.mu.Unlock()
	s.notify()
	return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id uint, input project.UpdateProjectInput) error {
	if err := s.api.UpdateProject(ctx, id, input); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if input.Name != nil {
			s.projects[i].Name = *input.Name
		}
		if input.Description != nil {
			s.projects[i].Description = *input.Description
		}
		if input.Budget != nil {
			s.projects[i].Budget = input.Budget
		}
		break
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// DeleteProject removes the project and, mirroring the server-side cascade,
// every cached job under it. A selection pointing into the removed set moves
// to the default choice among the remaining jobs, or nil.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept

	selectedRemoved := false
	keptJobs := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.ProjectID != nil && *j.ProjectID == id {
			if s.selectedJobID != nil && *s.selectedJobID == j.ID {
				selectedRemoved = true
			}
			continue
		}
		keptJobs = append(keptJobs, j)
	}
	s.jobs = keptJobs
	if selectedRemoved {
		s.selectedJobID = SelectDefaultJob(s.jobs)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) CreateJob(ctx context.Context, input job.CreateJobInput) (*job.Job, error) {
	j, err := s.api.CreateJob(ctx, input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, *j)
	if s.selectedJobID == nil {
		id := j.ID
		s.selectedJobID = &id
	}
	s.mu.Unlock()
	s.notify()
	return j, nil
}

func (s *Store) UpdateJob(ctx context.Context, id uint, input job.UpdateJobInput) error {
	if err := s.api.UpdateJob(ctx, id, input); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.jobs {
		if s.jobs[i].ID != id {
			continue
		}
		applyJobUpdate(&s.jobs[i], input)
		break
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// DeleteJob removes the job from the cache; a selection pointing at it moves
// to the default choice among the remaining jobs.
func (s *Store) DeleteJob(ctx context.Context, id uint) error {
	if err := s.api.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	s.jobs = kept
	if s.selectedJobID != nil && *s.selectedJobID == id {
		s.selectedJobID = SelectDefaultJob(s.jobs)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// applyJobUpdate merges the submitted partial into the cached row, the same
// merge the server performed.
func applyJobUpdate(j *job.Job, input job.UpdateJobInput) {
	if input.Name != nil {
		j.Name = *input.Name
	}
	if input.Description != nil {
		j.Description = *input.Description
	}
	if input.Status != nil {
		j.Status = *input.Status
	}
	if input.Progress != nil {
		j.Progress = *input.Progress
	}
	if input.CostPerHour != nil {
		j.CostPerHour = *input.CostPerHour
	}
	if input.TotalCost != nil {
		j.TotalCost = *input.TotalCost
	}
	if input.StartedAt != nil {
		j.StartedAt = input.StartedAt
	}
	if input.CompletedAt != nil {
		j.CompletedAt = input.CompletedAt
	}
	if input.EstimatedCompletion != nil {
		j.EstimatedCompletion = input.EstimatedCompletion
	}
	if input.Notifications != nil {
		j.Notifications = datatypes.NewJSONType(*input.Notifications)
	}
	if input.AutoScaling != nil {
		j.AutoScaling = datatypes.NewJSONType(*input.AutoScaling)
	}
}
