package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    string    `gorm:"not null;index" json:"room_id"`
	Author    string    `gorm:"not null" json:"author"`
	Content   string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
