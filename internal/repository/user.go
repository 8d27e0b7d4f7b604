package repository

import (
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"gorm.io/gorm"
)

// UserRepo defines data access for profiles, API keys and payment methods.
type UserRepo interface {
	GetProfile(userID string) (user.Profile, error)
	CreateProfile(p *user.Profile) error
	UpdateProfile(userID string, fields map[string]interface{}) error
	AddCredits(userID string, amount float64) error

	ListAPIKeys(userID string) ([]user.APIKey, error)
	CreateAPIKey(k *user.APIKey) error
	DeleteAPIKey(userID, keyID string) error

	ListPaymentMethods(userID string) ([]user.PaymentMethod, error)
	CreatePaymentMethod(m *user.PaymentMethod) error
	DeletePaymentMethod(userID, methodID string) error

	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{db: db}
}

func (r *DBUserRepo) GetProfile(userID string) (user.Profile, error) {
	var p user.Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return p, translate(err)
}

func (r *DBUserRepo) CreateProfile(p *user.Profile) error {
	return r.db.Create(p).Error
}

func (r *DBUserRepo) UpdateProfile(userID string, fields map[string]interface{}) error {
	res := r.db.Model(&user.Profile{}).Where("user_id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBUserRepo) AddCredits(userID string, amount float64) error {
	res := r.db.Model(&user.Profile{}).
		Where("user_id = ?", userID).
		Update("credits", gorm.Expr("credits + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBUserRepo) ListAPIKeys(userID string) ([]user.APIKey, error) {
	var keys []user.APIKey
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&keys).Error
	return keys, err
}

func (r *DBUserRepo) CreateAPIKey(k *user.APIKey) error {
	return r.db.Create(k).Error
}

// DeleteAPIKey is scoped by owner so one user cannot revoke another's key.
func (r *DBUserRepo) DeleteAPIKey(userID, keyID string) error {
	res := r.db.Where("user_id = ?", userID).Delete(&user.APIKey{}, "id = ?", keyID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBUserRepo) ListPaymentMethods(userID string) ([]user.PaymentMethod, error) {
	var methods []user.PaymentMethod
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&methods).Error
	return methods, err
}

// CreatePaymentMethod inserts m; when m is the new default, the previous
// default is cleared in the same transaction.
func (r *DBUserRepo) CreatePaymentMethod(m *user.PaymentMethod) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if m.IsDefault {
			err := tx.Model(&user.PaymentMethod{}).
				Where("user_id = ? AND is_default", m.UserID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
}

func (r *DBUserRepo) DeletePaymentMethod(userID, methodID string) error {
	res := r.db.Where("user_id = ?", userID).Delete(&user.PaymentMethod{}, "id = ?", methodID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{db: tx}
}
