package response

import (
	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ProjectResponse struct {
	Project project.Project `json:"project"`
}

type ProjectListResponse struct {
	Projects []project.Project `json:"projects"`
}

type JobResponse struct {
	Job job.Job `json:"job"`
}

type JobListResponse struct {
	Jobs []job.Job `json:"jobs"`
}

// MonitoringResponse carries the latest sample, or null when the job has
// never reported.
type MonitoringResponse struct {
	Monitoring *monitoring.Sample `json:"monitoring"`
}

type PricingListResponse struct {
	Pricing []pricing.HardwarePricing `json:"pricing"`
}

type ProfileResponse struct {
	Profile user.ProfileView `json:"profile"`
}

// APIKeyResponse is the creation response; Key carries the cleartext secret
// exactly once.
type APIKeyResponse struct {
	APIKey CreatedAPIKey `json:"apiKey"`
}

type CreatedAPIKey struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Key       string `json:"key"`
	CreatedAt string `json:"createdAt"`
}

type PaymentMethodResponse struct {
	PaymentMethod user.PaymentMethod `json:"paymentMethod"`
}

type PurchaseCreditsResponse struct {
	Success      bool    `json:"success"`
	CreditsAdded float64 `json:"creditsAdded"`
	Message      string  `json:"message"`
}
