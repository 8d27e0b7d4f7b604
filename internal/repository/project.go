package repository

import (
	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"gorm.io/gorm"
)

// ProjectRepo defines data access for projects.
type ProjectRepo interface {
	ListByUserID(userID string) ([]project.Project, error)
	GetByID(id uint) (project.Project, error)
	GetOwned(id uint, userID string) (project.Project, error)
	Create(p *project.Project) error
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{db: db}
}

// ListByUserID returns the user's projects, default project first, then by
// name ascending.
func (r *DBProjectRepo) ListByUserID(userID string) ([]project.Project, error) {
	var projects []project.Project
	err := r.db.
		Where("user_id = ?", userID).
		Order("is_default DESC, name ASC").
		Find(&projects).Error
	return projects, err
}

func (r *DBProjectRepo) GetByID(id uint) (project.Project, error) {
	var p project.Project
	err := r.db.First(&p, id).Error
	return p, translate(err)
}

// GetOwned resolves a project only when it belongs to userID. A foreign id
// is indistinguishable from a missing one.
func (r *DBProjectRepo) GetOwned(id uint, userID string) (project.Project, error) {
	var p project.Project
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	return p, translate(err)
}

func (r *DBProjectRepo) Create(p *project.Project) error {
	return r.db.Create(p).Error
}

func (r *DBProjectRepo) Update(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&project.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project together with its jobs and their monitoring
// samples. The whole cascade runs in one transaction so concurrent readers
// never observe a job without its project.
func (r *DBProjectRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		jobIDs := tx.Model(&job.Job{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("job_id IN (?)", jobIDs).Delete(&monitoring.Sample{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&job.Job{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&project.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{db: tx}
}
