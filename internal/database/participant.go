package database

import (
	"time"

	"github.com/wkalinowski/huddle/internal/models"
)

// RecordJoin appends a join-history row. Callers treat failures as advisory.
func (d *Database) RecordJoin(roomID, username string) error {
	return d.db.Create(&models.Participant{
		RoomID:   roomID,
		Username: username,
		JoinedAt: time.Now(),
	}).Error
}

// DistinctParticipants returns every username that ever joined a room, most
// recently joined first.
func (d *Database) DistinctParticipants(roomID string) ([]string, error) {
	var usernames []string

	err := d.db.
		Model(&models.Participant{}).
		Where("room_id = ?", roomID).
		Group("username").
		Order("MAX(joined_at) DESC").
		Pluck("username", &usernames).Error
	if err != nil {
		return nil, err
	}

	return usernames, nil
}
