package model

import "time"

// Activity is an audit record of a mutating API action. Rows are written
// asynchronously by the activity worker, never by request handlers.
type Activity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    uint      `gorm:"not null;index" json:"actor_id"`
	Action     string    `gorm:"size:64;not null;index" json:"action"`
	Resource   string    `gorm:"size:32;not null" json:"resource"`
	ResourceID uint      `gorm:"not null" json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}
