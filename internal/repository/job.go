package repository

import (
	"time"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"gorm.io/gorm"
)

// JobRepo defines data access for jobs.
type JobRepo interface {
	ListByUserID(userID string) ([]job.Job, error)
	ListByProjectID(projectID uint) ([]job.Job, error)
	GetByID(id uint) (*job.Job, error)
	GetOwned(id uint, userID string) (*job.Job, error)
	Create(j *job.Job) error
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) JobRepo
}

type DBJobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) *DBJobRepo {
	return &DBJobRepo{db: db}
}

// ListByUserID returns every job whose project belongs to the user, newest
// first. There is no job-to-user column: the join through project ownership
// is what keeps one user's jobs invisible to another.
func (r *DBJobRepo) ListByUserID(userID string) ([]job.Job, error) {
	var jobs []job.Job
	err := r.db.
		Joins("JOIN projects ON projects.id = jobs.project_id").
		Where("projects.user_id = ?", userID).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	deriveRuntimes(jobs)
	return jobs, nil
}

func (r *DBJobRepo) ListByProjectID(projectID uint) ([]job.Job, error) {
	var jobs []job.Job
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	deriveRuntimes(jobs)
	return jobs, nil
}

func (r *DBJobRepo) GetByID(id uint) (*job.Job, error) {
	var j job.Job
	if err := r.db.First(&j, id).Error; err != nil {
		return nil, translate(err)
	}
	j.DeriveRuntime(time.Now())
	return &j, nil
}

// GetOwned resolves a job only when its project belongs to userID.
func (r *DBJobRepo) GetOwned(id uint, userID string) (*job.Job, error) {
	var j job.Job
	err := r.db.
		Joins("JOIN projects ON projects.id = jobs.project_id").
		Where("jobs.id = ? AND projects.user_id = ?", id, userID).
		First(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	j.DeriveRuntime(time.Now())
	return &j, nil
}

func (r *DBJobRepo) Create(j *job.Job) error {
	if err := r.db.Create(j).Error; err != nil {
		return err
	}
	j.DeriveRuntime(time.Now())
	return nil
}

func (r *DBJobRepo) Update(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&job.Job{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the job's monitoring samples and then the job, atomically.
func (r *DBJobRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&monitoring.Sample{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&job.Job{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *DBJobRepo) WithTx(tx *gorm.DB) JobRepo {
	if tx == nil {
		return r
	}
	return &DBJobRepo{db: tx}
}

func deriveRuntimes(jobs []job.Job) {
	now := time.Now()
	for i := range jobs {
		jobs[i].DeriveRuntime(now)
	}
}
