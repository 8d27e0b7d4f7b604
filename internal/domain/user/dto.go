package user

// BillingInfo is the assembled billing block returned by the profile
// endpoint: stored settings joined with the balance and payment methods.
type BillingInfo struct {
	CurrentBalance float64         `json:"currentBalance"`
	MonthlyUsage   MonthlyUsage    `json:"monthlyUsage"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	AutoRecharge   AutoRecharge    `json:"autoRecharge"`
}

// ProfileView is the profile as the dashboard consumes it.
type ProfileView struct {
	Profile
	APIKeys []APIKey    `json:"apiKeys"`
	Billing BillingInfo `json:"billing"`
}

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Company   *string `json:"company"`
}

// Fields maps the non-nil members to column updates.
func (in UpdateProfileInput) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}
	if in.Company != nil {
		fields["company"] = *in.Company
	}
	return fields
}

// UpdatePreferencesInput replaces whichever preference blocks are present.
type UpdatePreferencesInput struct {
	Notifications *NotificationPreferences `json:"notifications"`
	Security      *SecuritySettings        `json:"security"`
}

// CreateAPIKeyInput names a new key.
type CreateAPIKeyInput struct {
	Name string `json:"name"`
}

// AddPaymentMethodInput registers a display-only payment instrument.
type AddPaymentMethodInput struct {
	Type        string `json:"type"`
	Last4       string `json:"last4"`
	ExpiryMonth *int   `json:"expiryMonth"`
	ExpiryYear  *int   `json:"expiryYear"`
	IsDefault   bool   `json:"isDefault"`
}

// PurchaseCreditsInput adds credits to the balance.
type PurchaseCreditsInput struct {
	Amount float64 `json:"amount"`
}
