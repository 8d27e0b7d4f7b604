package monitoring

import "time"

// Sample is one timestamped snapshot of resource utilization for a job.
// Samples are append-only; rows disappear only when their job is deleted.
// All metric fields are optional since agents may report partial telemetry.
type Sample struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	JobID       uint       `gorm:"not null;index:idx_monitoring_job_ts,priority:1" json:"jobId"`
	CPUUsage    *float64   `gorm:"type:decimal(5,2)" json:"cpuUsage,omitempty"`
	MemoryUsage *float64   `gorm:"type:decimal(5,2)" json:"memoryUsage,omitempty"`
	GPUUsage    *float64   `gorm:"type:decimal(5,2)" json:"gpuUsage,omitempty"`
	NetworkIn   *float64   `gorm:"type:decimal(10,2)" json:"networkIn,omitempty"`
	NetworkOut  *float64   `gorm:"type:decimal(10,2)" json:"networkOut,omitempty"`
	DiskUsage   *float64   `gorm:"type:decimal(5,2)" json:"diskUsage,omitempty"`
	Timestamp   time.Time  `gorm:"autoCreateTime;index:idx_monitoring_job_ts,priority:2" json:"timestamp"`
}

// TableName specifies the database table name
func (Sample) TableName() string {
	return "monitoring"
}

// InsertSampleInput is the agent-facing payload for reporting metrics.
type InsertSampleInput struct {
	JobID       uint     `json:"jobId"`
	CPUUsage    *float64 `json:"cpuUsage"`
	MemoryUsage *float64 `json:"memoryUsage"`
	GPUUsage    *float64 `json:"gpuUsage"`
	NetworkIn   *float64 `json:"networkIn"`
	NetworkOut  *float64 `json:"networkOut"`
	DiskUsage   *float64 `json:"diskUsage"`
}
