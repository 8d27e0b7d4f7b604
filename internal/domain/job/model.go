package job

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Status represents the current state of a job
type Status string

const (
	StatusPending   Status = "pending"   // Created, not yet started
	StatusRunning   Status = "running"   // Currently executing
	StatusCompleted Status = "completed" // Finished successfully
	StatusFailed    Status = "failed"    // Execution failed
	StatusStopped   Status = "stopped"   // Stopped by the user
)

// Valid reports whether s is one of the known job states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusStopped:
		return true
	}
	return false
}

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusStopped:
		return true
	case StatusPending, StatusRunning:
		return false
	}
	return false
}

// NotificationSettings configures per-job completion/failure alerts.
type NotificationSettings struct {
	EmailOnCompletion  bool `json:"emailOnCompletion"`
	EmailOnFailure     bool `json:"emailOnFailure"`
	SlackNotifications bool `json:"slackNotifications"`
}

// AutoScalingConfig bounds the instance count for a job.
type AutoScalingConfig struct {
	Enabled      bool `json:"enabled"`
	MinInstances int  `json:"minInstances"`
	MaxInstances int  `json:"maxInstances"`
}

// DefaultAutoScaling is applied when a creator supplies no config.
func DefaultAutoScaling() AutoScalingConfig {
	return AutoScalingConfig{Enabled: false, MinInstances: 1, MaxInstances: 1}
}

// Job represents a unit of compute work with hardware/region assignment,
// lifecycle status and cost accrual.
type Job struct {
	ID                  uint                                     `gorm:"primaryKey" json:"id"`
	ProjectID           *uint                                    `gorm:"index" json:"projectId"`
	Name                string                                   `gorm:"size:255;not null" json:"name"`
	Description         string                                   `gorm:"type:text" json:"description,omitempty"`
	Status              Status                                   `gorm:"size:50;default:'pending'" json:"status"`
	Progress            int                                      `gorm:"default:0" json:"progress"`
	HardwareType        string                                   `gorm:"size:100;not null" json:"hardwareType"`
	Region              string                                   `gorm:"size:100;not null" json:"region"`
	CostPerHour         float64                                  `gorm:"type:decimal(8,4);default:0" json:"costPerHour"`
	TotalCost           float64                                  `gorm:"type:decimal(10,2);default:0" json:"totalCost"`
	EstimatedCompletion *time.Time                               `json:"estimatedCompletion"`
	StartedAt           *time.Time                               `json:"startedAt"`
	CompletedAt         *time.Time                               `json:"completedAt"`
	Notifications       datatypes.JSONType[NotificationSettings] `json:"notifications"`
	AutoScaling         datatypes.JSONType[AutoScalingConfig]    `json:"autoScaling"`
	CreatedAt           time.Time                                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time                                `gorm:"autoUpdateTime" json:"updatedAt"`

	// Runtime is derived from the timestamps at read time; never stored.
	Runtime string `gorm:"-" json:"runtime"`
}

// TableName specifies the database table name
func (Job) TableName() string {
	return "jobs"
}

// RuntimeAt renders the elapsed execution time as "<h>h <m>m".
// The end of the window is CompletedAt when set; otherwise it depends on the
// state: a running job is still accruing, every other state has accrued
// nothing beyond its start.
func (j *Job) RuntimeAt(now time.Time) string {
	if j.StartedAt == nil {
		return "0h 0m"
	}
	end := *j.StartedAt
	if j.CompletedAt != nil {
		end = *j.CompletedAt
	} else {
		switch j.Status {
		case StatusRunning:
			end = now
		case StatusPending, StatusCompleted, StatusFailed, StatusStopped:
			end = *j.StartedAt
		}
	}
	elapsed := end.Sub(*j.StartedAt)
	hours := int(elapsed / time.Hour)
	minutes := int((elapsed % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// DeriveRuntime fills the transient Runtime field.
func (j *Job) DeriveRuntime(now time.Time) {
	j.Runtime = j.RuntimeAt(now)
}
