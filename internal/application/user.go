package application

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{Repos: repos}
}

// Identity carries the profile claims supplied by the identity provider.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

// GetProfile returns the durable profile for the user, creating it with
// dashboard defaults on first contact. API keys come back masked.
func (s *UserService) GetProfile(id Identity) (*user.ProfileView, error) {
	profile, err := s.Repos.User.GetProfile(id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		profile = user.Profile{
			UserID:      id.UserID,
			Email:       id.Email,
			FirstName:   id.FirstName,
			LastName:    id.LastName,
			Credits:     user.DefaultCredits,
			Preferences: datatypes.NewJSONType(user.DefaultPreferences()),
			Billing:     datatypes.NewJSONType(user.DefaultBilling()),
		}
		if err := s.Repos.User.CreateProfile(&profile); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	keys, err := s.Repos.User.ListAPIKeys(id.UserID)
	if err != nil {
		return nil, err
	}
	methods, err := s.Repos.User.ListPaymentMethods(id.UserID)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []user.APIKey{}
	}
	if methods == nil {
		methods = []user.PaymentMethod{}
	}

	billing := profile.Billing.Data()
	return &user.ProfileView{
		Profile: profile,
		APIKeys: keys,
		Billing: user.BillingInfo{
			CurrentBalance: profile.Credits,
			MonthlyUsage:   billing.MonthlyUsage,
			PaymentMethods: methods,
			AutoRecharge:   billing.AutoRecharge,
		},
	}, nil
}

func (s *UserService) UpdateProfile(userID string, input user.UpdateProfileInput) error {
	fields := input.Fields()
	if len(fields) == 0 {
		return nil
	}
	return s.Repos.User.UpdateProfile(userID, fields)
}

// UpdatePreferences replaces whichever preference blocks the client sent,
// keeping the other block as stored.
func (s *UserService) UpdatePreferences(userID string, input user.UpdatePreferencesInput) error {
	profile, err := s.Repos.User.GetProfile(userID)
	if err != nil {
		return err
	}
	prefs := profile.Preferences.Data()
	if input.Notifications != nil {
		prefs.Notifications = *input.Notifications
	}
	if input.Security != nil {
		prefs.Security = *input.Security
	}
	return s.Repos.User.UpdateProfile(userID, map[string]interface{}{
		"preferences": datatypes.NewJSONType(prefs),
	})
}

// CreateAPIKey mints a key and returns it with the cleartext secret set.
// Only the bcrypt hash and a masked rendering are stored; the secret is
// never recoverable afterwards.
func (s *UserService) CreateAPIKey(userID, name string) (*user.APIKey, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	secret := "ck_" + hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	key := &user.APIKey{
		ID:         "ak_" + uuid.NewString(),
		UserID:     userID,
		Name:       name,
		SecretHash: string(hash),
		MaskedKey:  fmt.Sprintf("ck_****%s", secret[len(secret)-4:]),
	}
	if err := s.Repos.User.CreateAPIKey(key); err != nil {
		return nil, err
	}
	key.Secret = secret
	return key, nil
}

func (s *UserService) DeleteAPIKey(userID, keyID string) error {
	return s.Repos.User.DeleteAPIKey(userID, keyID)
}

func (s *UserService) AddPaymentMethod(userID string, input user.AddPaymentMethodInput) (*user.PaymentMethod, error) {
	if input.Type != user.PaymentTypeCard && input.Type != user.PaymentTypeBank {
		return nil, ErrInvalidType
	}

	method := &user.PaymentMethod{
		ID:          "pm_" + uuid.NewString(),
		UserID:      userID,
		Type:        input.Type,
		Last4:       input.Last4,
		ExpiryMonth: input.ExpiryMonth,
		ExpiryYear:  input.ExpiryYear,
		IsDefault:   input.IsDefault,
	}
	if err := s.Repos.User.CreatePaymentMethod(method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *UserService) DeletePaymentMethod(userID, methodID string) error {
	return s.Repos.User.DeletePaymentMethod(userID, methodID)
}

// PurchaseCredits adds amount to the balance. The payment processor
// integration is an external boundary; no charge is made here.
func (s *UserService) PurchaseCredits(userID string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if _, err := s.Repos.User.GetProfile(userID); err != nil {
		return err
	}
	return s.Repos.User.AddCredits(userID, amount)
}
