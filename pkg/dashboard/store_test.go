package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/pkg/client"
	"github.com/nimbusgrid/platform-go/pkg/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(u uint) *uint { return &u }

// fakeAPI is a canned server: two projects, three jobs, and configurable
// failure of individual routes.
type fakeAPI struct {
	failJobs    bool
	failDeletes bool
	deleted     []string
}

func newServer(t *testing.T, f *fakeAPI) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"projects": []project.Project{
					{ID: 1, Name: "Default Project", IsDefault: true},
					{ID: 2, Name: "research"},
				},
			})
		case http.MethodDelete:
			if f.failDeletes {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Failed to delete project"})
				return
			}
			f.deleted = append(f.deleted, "project:"+r.URL.Query().Get("projectId"))
			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		}
	})
	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if f.failJobs {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Failed to fetch jobs"})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"jobs": []job.Job{
					{ID: 30, ProjectID: ptr(2), Name: "newest", Status: job.StatusRunning},
					{ID: 20, ProjectID: ptr(2), Name: "older", Status: job.StatusPending},
					{ID: 10, ProjectID: ptr(1), Name: "oldest", Status: job.StatusCompleted},
				},
			})
		case http.MethodPost:
			json.NewEncoder(w).Encode(map[string]interface{}{})
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStoreLoad(t *testing.T) {
	t.Run("populates and selects the first job", func(t *testing.T) {
		f := &fakeAPI{}
		srv := newServer(t, f)
		store := dashboard.NewStore(client.New(srv.URL, "tok"))

		require.NoError(t, store.Load(context.Background()))

		snap := store.Snapshot()
		assert.Len(t, snap.Projects, 2)
		assert.Len(t, snap.Jobs, 3)
		require.NotNil(t, snap.SelectedJobID)
		assert.Equal(t, uint(30), *snap.SelectedJobID)
		assert.False(t, snap.IsLoading)
	})

	t.Run("one failed fetch leaves the store empty", func(t *testing.T) {
		f := &fakeAPI{failJobs: true}
		srv := newServer(t, f)
		store := dashboard.NewStore(client.New(srv.URL, "tok"))

		err := store.Load(context.Background())
		require.Error(t, err)

		snap := store.Snapshot()
		assert.Empty(t, snap.Projects)
		assert.Empty(t, snap.Jobs)
		assert.Nil(t, snap.SelectedJobID)
		assert.False(t, snap.IsLoading)
	})
}

func TestSelectDefaultJob(t *testing.T) {
	assert.Nil(t, dashboard.SelectDefaultJob(nil))
	assert.Nil(t, dashboard.SelectDefaultJob([]job.Job{}))

	got := dashboard.SelectDefaultJob([]job.Job{{ID: 7}, {ID: 8}})
	require.NotNil(t, got)
	assert.Equal(t, uint(7), *got)
}

func TestStoreDeleteProjectCascade(t *testing.T) {
	f := &fakeAPI{}
	srv := newServer(t, f)
	store := dashboard.NewStore(client.New(srv.URL, "tok"))
	require.NoError(t, store.Load(context.Background()))

	// Selection points into project 2's job set.
	store.SelectJob(20)

	require.NoError(t, store.DeleteProject(context.Background(), 2))
	assert.Contains(t, f.deleted, "project:2")

	snap := store.Snapshot()
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Jobs, 1)
	for _, j := range snap.Jobs {
		require.NotNil(t, j.ProjectID)
		assert.NotEqual(t, uint(2), *j.ProjectID)
	}
	// Selection moved off the removed set, never to a deleted job.
	require.NotNil(t, snap.SelectedJobID)
	assert.Equal(t, uint(10), *snap.SelectedJobID)
}

func TestStoreFailedMutationLeavesCacheUntouched(t *testing.T) {
	f := &fakeAPI{}
	srv := newServer(t, f)
	store := dashboard.NewStore(client.New(srv.URL, "tok"))
	require.NoError(t, store.Load(context.Background()))
	before := store.Snapshot()

	f.failDeletes = true
	err := store.DeleteProject(context.Background(), 2)
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to delete project", apiErr.Message)

	after := store.Snapshot()
	assert.Equal(t, len(before.Projects), len(after.Projects))
	assert.Equal(t, len(before.Jobs), len(after.Jobs))
	assert.Equal(t, *before.SelectedJobID, *after.SelectedJobID)
}

func TestGetJobsByProject(t *testing.T) {
	f := &fakeAPI{}
	srv := newServer(t, f)
	store := dashboard.NewStore(client.New(srv.URL, "tok"))
	require.NoError(t, store.Load(context.Background()))

	jobs := store.GetJobsByProject(2)
	assert.Len(t, jobs, 2)
	assert.Empty(t, store.GetJobsByProject(99))
}
