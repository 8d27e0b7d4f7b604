package application_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"github.com/nimbusgrid/platform-go/internal/repository"
	"github.com/nimbusgrid/platform-go/internal/repository/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func setupUserMocks(t *testing.T) (*application.UserService, *mock.MockUserRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock.NewMockUserRepo(ctrl)
	repos := &repository.Repos{User: mockUser}
	return application.NewUserService(repos), mockUser
}

func TestGetProfile(t *testing.T) {
	id := application.Identity{UserID: "u1", Email: "a@b.c", FirstName: "Ada", LastName: "L"}

	t.Run("creates profile with defaults on first contact", func(t *testing.T) {
		svc, mockUser := setupUserMocks(t)
		mockUser.EXPECT().GetProfile("u1").Return(user.Profile{}, repository.ErrNotFound)
		mockUser.EXPECT().CreateProfile(gomock.Any()).Do(func(p *user.Profile) {
			if p.Email != "a@b.c" || p.Credits != user.DefaultCredits {
				t.Fatalf("unexpected seeded profile %+v", p)
			}
		}).Return(nil)
		mockUser.EXPECT().ListAPIKeys("u1").Return(nil, nil)
		mockUser.EXPECT().ListPaymentMethods("u1").Return(nil, nil)

		view, err := svc.GetProfile(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.APIKeys == nil || view.Billing.PaymentMethods == nil {
			t.Fatal("collections must render as empty arrays, not null")
		}
		if view.Billing.CurrentBalance != user.DefaultCredits {
			t.Fatalf("expected default balance, got %v", view.Billing.CurrentBalance)
		}
	})

	t.Run("assembles billing from stored profile", func(t *testing.T) {
		svc, mockUser := setupUserMocks(t)
		billing := user.DefaultBilling()
		billing.MonthlyUsage.ComputeHours = 12
		stored := user.Profile{
			UserID:  "u1",
			Credits: 990,
			Billing: datatypes.NewJSONType(billing),
		}
		mockUser.EXPECT().GetProfile("u1").Return(stored, nil)
		mockUser.EXPECT().ListAPIKeys("u1").Return([]user.APIKey{{ID: "ak_1"}}, nil)
		mockUser.EXPECT().ListPaymentMethods("u1").Return([]user.PaymentMethod{{ID: "pm_1"}}, nil)

		view, err := svc.GetProfile(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Billing.CurrentBalance != 990 || view.Billing.MonthlyUsage.ComputeHours != 12 {
			t.Fatalf("unexpected billing %+v", view.Billing)
		}
		if len(view.APIKeys) != 1 || len(view.Billing.PaymentMethods) != 1 {
			t.Fatal("expected stored keys and methods")
		}
	})
}

func TestCreateAPIKey(t *testing.T) {
	t.Run("mints prefixed secret and stores only the hash", func(t *testing.T) {
		svc, mockUser := setupUserMocks(t)
		var stored user.APIKey
		mockUser.EXPECT().CreateAPIKey(gomock.Any()).Do(func(k *user.APIKey) {
			stored = *k
		}).Return(nil)

		key, err := svc.CreateAPIKey("u1", "ci")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(key.Secret, "ck_") || len(key.Secret) != 35 {
			t.Fatalf("unexpected secret format %q", key.Secret)
		}
		if !strings.HasPrefix(key.ID, "ak_") {
			t.Fatalf("unexpected id %q", key.ID)
		}
		if stored.Secret != "" {
			t.Fatal("cleartext secret must not be stored")
		}
		if !strings.HasSuffix(stored.MaskedKey, key.Secret[len(key.Secret)-4:]) {
			t.Fatalf("mask %q does not match secret tail", stored.MaskedKey)
		}
		if bcrypt.CompareHashAndPassword([]byte(stored.SecretHash), []byte(key.Secret)) != nil {
			t.Fatal("stored hash does not verify the secret")
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		svc, _ := setupUserMocks(t)
		if _, err := svc.CreateAPIKey("u1", ""); !errors.Is(err, application.ErrNameRequired) {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}
	})
}

func TestAddPaymentMethod(t *testing.T) {
	t.Run("rejects unknown type", func(t *testing.T) {
		svc, _ := setupUserMocks(t)
		_, err := svc.AddPaymentMethod("u1", user.AddPaymentMethodInput{Type: "crypto"})
		if !errors.Is(err, application.ErrInvalidType) {
			t.Fatalf("expected ErrInvalidType, got %v", err)
		}
	})

	t.Run("assigns prefixed id", func(t *testing.T) {
		svc, mockUser := setupUserMocks(t)
		mockUser.EXPECT().CreatePaymentMethod(gomock.Any()).Return(nil)
		m, err := svc.AddPaymentMethod("u1", user.AddPaymentMethodInput{Type: user.PaymentTypeCard, Last4: "4242"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(m.ID, "pm_") {
			t.Fatalf("unexpected id %q", m.ID)
		}
	})
}

func TestPurchaseCredits(t *testing.T) {
	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _ := setupUserMocks(t)
		if err := svc.PurchaseCredits("u1", 0); !errors.Is(err, application.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if err := svc.PurchaseCredits("u1", -5); !errors.Is(err, application.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("adds credits atomically", func(t *testing.T) {
		svc, mockUser := setupUserMocks(t)
		mockUser.EXPECT().GetProfile("u1").Return(user.Profile{UserID: "u1"}, nil)
		mockUser.EXPECT().AddCredits("u1", 500.0).Return(nil)
		if err := svc.PurchaseCredits("u1", 500); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
