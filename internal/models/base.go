package models

import "time"

// BaseModel is embedded by every mutable entity. Identifiers are numeric
// because file-share messages reference files by their decimal id.
type BaseModel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
