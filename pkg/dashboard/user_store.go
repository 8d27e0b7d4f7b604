package dashboard

import (
	"context"
	"sync"

	"gorm.io/datatypes"

	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"github.com/nimbusgrid/platform-go/pkg/client"
	"github.com/nimbusgrid/platform-go/pkg/response"
)

// UserStore caches the session's profile view: identity fields, API keys,
// payment methods and the credit balance. Mutations are write-through; a
// failed call leaves the cache untouched.
type UserStore struct {
	api *client.Client

	mu      sync.Mutex
	profile *user.ProfileView
	loading bool

	listeners []func()
}

func NewUserStore(api *client.Client) *UserStore {
	return &UserStore{api: api}
}

func (s *UserStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *UserStore) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Profile returns the cached view, nil before Load succeeds.
func (s *UserStore) Profile() *user.ProfileView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	view := *s.profile
	return &view
}

func (s *UserStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *UserStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	view, err := s.api.GetProfile(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.profile = view
	}
	s.mu.Unlock()
	s.notify()
	return err
}

func (s *UserStore) UpdateProfile(ctx context.Context, input user.UpdateProfileInput) error {
	if err := s.api.UpdateProfile(ctx, input); err != nil {
		return err
	}
	s.mu.Lock()
	if s.profile != nil {
		if input.Email != nil {
			s.profile.Email = *input.Email
		}
		if input.FirstName != nil {
			s.profile.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			s.profile.LastName = *input.LastName
		}
		if input.Company != nil {
			s.profile.Company = *input.Company
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *UserStore) UpdatePreferences(ctx context.Context, input user.UpdatePreferencesInput) error {
	if err := s.api.UpdatePreferences(ctx, input); err != nil {
		return err
	}
	s.mu.Lock()
	if s.profile != nil {
		prefs := s.profile.Preferences.Data()
		if input.Notifications != nil {
			prefs.Notifications = *input.Notifications
		}
		if input.Security != nil {
			prefs.Security = *input.Security
		}
		s.profile.Preferences = datatypes.NewJSONType(prefs)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// CreateAPIKey mints a key and returns the one-time creation payload with
// the cleartext secret. The cache stores only the masked form.
func (s *UserStore) CreateAPIKey(ctx context.Context, name string) (*response.CreatedAPIKey, error) {
	created, err := s.api.CreateAPIKey(ctx, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.profile != nil {
		s.profile.APIKeys = append(s.profile.APIKeys, user.APIKey{
			ID:        created.ID,
			Name:      created.Name,
			MaskedKey: maskSecret(created.Key),
		})
	}
	s.mu.Unlock()
	s.notify()
	return created, nil
}

func (s *UserStore) DeleteAPIKey(ctx context.Context, keyID string) error {
	if err := s.api.DeleteAPIKey(ctx, keyID); err != nil {
		return err
	}
	s.mu.Lock()
	if s.profile != nil {
		kept := s.profile.APIKeys[:0]
		for _, k := range s.profile.APIKeys {
			if k.ID != keyID {
				kept = append(kept, k)
			}
		}
		s.profile.APIKeys = kept
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *UserStore) AddPaymentMethod(ctx context.Context, input user.AddPaymentMethodInput) (*user.PaymentMethod, error) {
	method, err := s.api.AddPaymentMethod(ctx, input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.profile != nil {
		if method.IsDefault {
			for i := range s.profile.Billing.PaymentMethods {
				s.profile.Billing.PaymentMethods[i].IsDefault = false
			}
		}
		s.profile.Billing.PaymentMethods = append(s.profile.Billing.PaymentMethods, *method)
	}
	s.mu.Unlock()
	s.notify()
	return method, nil
}

func (s *UserStore) DeletePaymentMethod(ctx context.Context, methodID string) error {
	if err := s.api.DeletePaymentMethod(ctx, methodID); err != nil {
		return err
	}
	s.mu.Lock()
	if s.profile != nil {
		kept := s.profile.Billing.PaymentMethods[:0]
		for _, m := range s.profile.Billing.PaymentMethods {
			if m.ID != methodID {
				kept = append(kept, m)
			}
		}
		s.profile.Billing.PaymentMethods = kept
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *UserStore) PurchaseCredits(ctx context.Context, amount float64) error {
	result, err := s.api.PurchaseCredits(ctx, amount)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.profile != nil {
		s.profile.Credits += result.CreditsAdded
		s.profile.Billing.CurrentBalance = s.profile.Credits
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func maskSecret(secret string) string {
	if len(secret) < 4 {
		return "ck_****"
	}
	return "ck_****" + secret[len(secret)-4:]
}
