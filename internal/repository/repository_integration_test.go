package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"github.com/nimbusgrid/platform-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func seedProject(t *testing.T, repos *repository.Repos, userID, name string, isDefault bool) project.Project {
	t.Helper()
	p := project.Project{Name: name, UserID: userID, IsDefault: isDefault}
	require.NoError(t, repos.Project.Create(&p))
	return p
}

func seedJob(t *testing.T, repos *repository.Repos, projectID uint, name string, createdAt time.Time) job.Job {
	t.Helper()
	j := job.Job{
		ProjectID:    &projectID,
		Name:         name,
		Status:       job.StatusPending,
		HardwareType: "gpu-t4",
		Region:       "us-east-1",
		CreatedAt:    createdAt,
	}
	require.NoError(t, repos.Job.Create(&j))
	return j
}

func TestProjectDeleteCascade(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	p := seedProject(t, repos, "cascade-user", "doomed", false)
	j1 := seedJob(t, repos, p.ID, "j1", time.Now())
	j2 := seedJob(t, repos, p.ID, "j2", time.Now())
	require.NoError(t, repos.Monitoring.Insert(&monitoring.Sample{JobID: j1.ID, CPUUsage: f64(50)}))
	require.NoError(t, repos.Monitoring.Insert(&monitoring.Sample{JobID: j2.ID, CPUUsage: f64(60)}))

	require.NoError(t, repos.Project.Delete(p.ID))

	_, err := repos.Project.GetByID(p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repos.Job.GetByID(j1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repos.Monitoring.Latest(j1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repos.Monitoring.Latest(j2.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestJobDeleteRemovesSamples(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	p := seedProject(t, repos, "job-delete-user", "p", false)
	j := seedJob(t, repos, p.ID, "j", time.Now())
	require.NoError(t, repos.Monitoring.Insert(&monitoring.Sample{JobID: j.ID, GPUUsage: f64(88)}))

	require.NoError(t, repos.Job.Delete(j.ID))

	_, err := repos.Job.GetByID(j.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repos.Monitoring.Latest(j.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Parent project is untouched.
	_, err = repos.Project.GetByID(p.ID)
	require.NoError(t, err)
}

func TestJobVisibilityRunsThroughProjectOwnership(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	mine := seedProject(t, repos, "owner-a", "pa", false)
	theirs := seedProject(t, repos, "owner-b", "pb", false)
	myJob := seedJob(t, repos, mine.ID, "mine", time.Now())
	seedJob(t, repos, theirs.ID, "theirs", time.Now())

	jobs, err := repos.Job.ListByUserID("owner-a")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, myJob.ID, jobs[0].ID)

	// A foreign id behaves exactly like a missing one.
	_, err = repos.Job.GetOwned(myJob.ID, "owner-b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	got, err := repos.Job.GetOwned(myJob.ID, "owner-a")
	require.NoError(t, err)
	assert.Equal(t, myJob.ID, got.ID)
}

func TestProjectOrdering(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	seedProject(t, repos, "order-user", "zeta", false)
	seedProject(t, repos, "order-user", "alpha", false)
	seedProject(t, repos, "order-user", "Default Project", true)

	projects, err := repos.Project.ListByUserID("order-user")
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.True(t, projects[0].IsDefault)
	assert.Equal(t, "alpha", projects[1].Name)
	assert.Equal(t, "zeta", projects[2].Name)
}

func TestJobOrderingNewestFirst(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	p := seedProject(t, repos, "job-order-user", "p", false)
	base := time.Now().Add(-time.Hour)
	seedJob(t, repos, p.ID, "first", base)
	seedJob(t, repos, p.ID, "second", base.Add(10*time.Minute))
	seedJob(t, repos, p.ID, "third", base.Add(20*time.Minute))

	jobs, err := repos.Job.ListByUserID("job-order-user")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "third", jobs[0].Name)
	assert.Equal(t, "first", jobs[2].Name)
}

func TestMonitoringLatestWins(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	p := seedProject(t, repos, "mon-user", "p", false)
	j := seedJob(t, repos, p.ID, "j", time.Now())

	old := monitoring.Sample{JobID: j.ID, CPUUsage: f64(10), Timestamp: time.Now().Add(-time.Minute)}
	require.NoError(t, repos.Monitoring.Insert(&old))
	fresh := monitoring.Sample{JobID: j.ID, CPUUsage: f64(90), Timestamp: time.Now()}
	require.NoError(t, repos.Monitoring.Insert(&fresh))

	got, err := repos.Monitoring.Latest(j.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CPUUsage)
	assert.Equal(t, 90.0, *got.CPUUsage)
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	err := repos.Project.Update(999999, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	err = repos.Job.Update(999999, map[string]interface{}{"progress": 5})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repos.Job.Delete(999999)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUserRepo(t *testing.T) {
	gdb := testutils.SetupPostgres(t)
	repos := repository.New(gdb)

	require.NoError(t, repos.User.CreateProfile(&user.Profile{UserID: "acct", Credits: 100}))

	t.Run("credits accumulate", func(t *testing.T) {
		require.NoError(t, repos.User.AddCredits("acct", 250))
		p, err := repos.User.GetProfile("acct")
		require.NoError(t, err)
		assert.Equal(t, 350.0, p.Credits)
	})

	t.Run("new default clears the previous one", func(t *testing.T) {
		first := user.PaymentMethod{ID: "pm_a", UserID: "acct", Type: user.PaymentTypeCard, Last4: "1111", IsDefault: true}
		require.NoError(t, repos.User.CreatePaymentMethod(&first))
		second := user.PaymentMethod{ID: "pm_b", UserID: "acct", Type: user.PaymentTypeCard, Last4: "2222", IsDefault: true}
		require.NoError(t, repos.User.CreatePaymentMethod(&second))

		methods, err := repos.User.ListPaymentMethods("acct")
		require.NoError(t, err)
		require.Len(t, methods, 2)
		assert.True(t, methods[0].IsDefault)
		assert.Equal(t, "pm_b", methods[0].ID)
		assert.False(t, methods[1].IsDefault)
	})

	t.Run("key deletion is owner scoped", func(t *testing.T) {
		k := user.APIKey{ID: "ak_x", UserID: "acct", Name: "ci", SecretHash: "h", MaskedKey: "ck_****abcd"}
		require.NoError(t, repos.User.CreateAPIKey(&k))

		err := repos.User.DeleteAPIKey("someone-else", "ak_x")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, repos.User.DeleteAPIKey("acct", "ak_x"))
	})
}
