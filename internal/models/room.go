package models

import (
	"time"
)

const (
	ModeChat  = "chat"
	ModeVideo = "video"
)

type Room struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Mode      string    `gorm:"not null;check:mode IN ('chat','video')" json:"mode"`
	Creator   string    `gorm:"not null" json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `gorm:"default:true" json:"active"`
}
