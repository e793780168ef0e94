package models

import "time"

// DocumentSnapshot is one persisted, serialized document keyed by storage key
type DocumentSnapshot struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for DocumentSnapshot model
func (DocumentSnapshot) TableName() string {
	return "document_snapshots"
}
