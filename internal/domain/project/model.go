package project

import "time"

// Project groups jobs under one owning user. The owner id is the opaque
// subject issued by the external identity provider.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	UserID      string    `gorm:"size:255;not null;index" json:"userId"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Budget      *float64  `gorm:"type:decimal(10,2)" json:"budget,omitempty"`
	IsDefault   bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the database table name
func (Project) TableName() string {
	return "projects"
}
