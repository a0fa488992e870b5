package database

import (
	"github.com/wkalinowski/huddle/internal/models"
)

// SaveMessage appends a message. gorm fills in the store-assigned id, which is
// the source of truth for message order within a room.
func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// RecentMessages returns the last limit messages of a room in chronological
// order.
func (d *Database) RecentMessages(roomID string, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("room_id = ?", roomID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Newest-first from the query; flip so oldest come first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
