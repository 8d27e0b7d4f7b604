package user

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationPreferences is the account-wide alerting block.
type NotificationPreferences struct {
	EmailOnCompletion  bool   `json:"emailOnCompletion"`
	EmailOnFailure     bool   `json:"emailOnFailure"`
	EmailOnLowCredits  bool   `json:"emailOnLowCredits"`
	WeeklyUsageSummary bool   `json:"weeklyUsageSummary"`
	SlackNotifications bool   `json:"slackNotifications"`
	WebhookURL         string `json:"webhookUrl,omitempty"`
}

type SecuritySettings struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
}

// Preferences bundles the notification and security blocks stored on the
// profile row as JSONB.
type Preferences struct {
	Notifications NotificationPreferences `json:"notifications"`
	Security      SecuritySettings        `json:"security"`
}

// MonthlyUsage summarizes the current billing period.
type MonthlyUsage struct {
	CreditsUsed  float64 `json:"creditsUsed"`
	ComputeHours float64 `json:"computeHours"`
	StorageUsed  float64 `json:"storageUsed"`
}

// AutoRecharge tops the balance up to Amount when it falls below Threshold.
type AutoRecharge struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
	Amount    float64 `json:"amount"`
}

// BillingSettings is the durable part of the billing block. Payment methods
// live in their own table; the balance is the credits column.
type BillingSettings struct {
	MonthlyUsage MonthlyUsage `json:"monthlyUsage"`
	AutoRecharge AutoRecharge `json:"autoRecharge"`
}

// Profile is the durable per-user account record. The primary key is the
// subject issued by the external identity provider.
type Profile struct {
	UserID      string                              `gorm:"primaryKey;size:255;column:user_id" json:"id"`
	Email       string                              `gorm:"size:255" json:"email"`
	FirstName   string                              `gorm:"size:255" json:"firstName"`
	LastName    string                              `gorm:"size:255" json:"lastName"`
	Company     string                              `gorm:"size:255" json:"company"`
	Credits     float64                             `gorm:"type:decimal(10,2);default:0" json:"credits"`
	Preferences datatypes.JSONType[Preferences]     `json:"preferences"`
	Billing     datatypes.JSONType[BillingSettings] `json:"-"`
	CreatedAt   time.Time                           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                           `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the database table name
func (Profile) TableName() string {
	return "user_profiles"
}

// APIKey is a programmatic credential. The secret is returned exactly once
// at creation; only its bcrypt hash and a masked rendering are stored.
type APIKey struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	UserID     string     `gorm:"size:255;not null;index" json:"-"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	SecretHash string     `gorm:"size:255;not null" json:"-"`
	MaskedKey  string     `gorm:"size:64" json:"key"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsed,omitempty"`

	// Secret carries the cleartext key in the creation response only.
	Secret string `gorm:"-" json:"-"`
}

// TableName specifies the database table name
func (APIKey) TableName() string {
	return "api_keys"
}

// PaymentMethod is a stored billing instrument. Only non-sensitive display
// data is kept; the payment processor owns the real instrument.
type PaymentMethod struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      string    `gorm:"size:255;not null;index" json:"-"`
	Type        string    `gorm:"size:10;not null" json:"type"`
	Last4       string    `gorm:"size:4;not null" json:"last4"`
	ExpiryMonth *int      `json:"expiryMonth,omitempty"`
	ExpiryYear  *int      `json:"expiryYear,omitempty"`
	IsDefault   bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}

// TableName specifies the database table name
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

const (
	PaymentTypeCard = "card"
	PaymentTypeBank = "bank"
)

// DefaultPreferences mirrors what the dashboard assumes for a fresh account.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: NotificationPreferences{
			EmailOnCompletion: true,
			EmailOnFailure:    true,
			EmailOnLowCredits: true,
		},
	}
}

// DefaultBilling starts with a zeroed usage block and auto-recharge off.
func DefaultBilling() BillingSettings {
	return BillingSettings{
		AutoRecharge: AutoRecharge{Enabled: false, Threshold: 50, Amount: 500},
	}
}

// DefaultCredits is the starting balance granted to a first-time user.
const DefaultCredits = 1250
