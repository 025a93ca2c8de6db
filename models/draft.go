package models

import "time"

// DraftRecord is the durable key/value slot backing the in-progress
// invoice draft. One JSON blob per key.
type DraftRecord struct {
	Key       string `gorm:"primary_key"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
