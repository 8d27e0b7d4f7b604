package job

import "time"

// CreateJobInput is the payload for submitting a new job.
type CreateJobInput struct {
	ProjectID     uint                  `json:"projectId"`
	Name          string                `json:"name"`
	Description   *string               `json:"description"`
	HardwareType  string                `json:"hardwareType"`
	Region        string                `json:"region"`
	CostPerHour   *float64              `json:"costPerHour"`
	Notifications *NotificationSettings `json:"notifications"`
	AutoScaling   *AutoScalingConfig    `json:"autoScaling"`
}

// UpdateJobInput carries a partial update. Status transitions use the same
// path: callers set status together with whatever timestamps the transition
// implies (e.g. running + startedAt).
type UpdateJobInput struct {
	Name                *string               `json:"name"`
	Description         *string               `json:"description"`
	Status              *Status               `json:"status"`
	Progress            *int                  `json:"progress"`
	CostPerHour         *float64              `json:"costPerHour"`
	TotalCost           *float64              `json:"totalCost"`
	StartedAt           *time.Time            `json:"startedAt"`
	CompletedAt         *time.Time            `json:"completedAt"`
	EstimatedCompletion *time.Time            `json:"estimatedCompletion"`
	Notifications       *NotificationSettings `json:"notifications"`
	AutoScaling         *AutoScalingConfig    `json:"autoScaling"`
}

// Fields maps the non-nil members to column updates.
func (in UpdateJobInput) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Progress != nil {
		fields["progress"] = *in.Progress
	}
	if in.CostPerHour != nil {
		fields["cost_per_hour"] = *in.CostPerHour
	}
	if in.TotalCost != nil {
		fields["total_cost"] = *in.TotalCost
	}
	if in.StartedAt != nil {
		fields["started_at"] = *in.StartedAt
	}
	if in.CompletedAt != nil {
		fields["completed_at"] = *in.CompletedAt
	}
	if in.EstimatedCompletion != nil {
		fields["estimated_completion"] = *in.EstimatedCompletion
	}
	return fields
}
