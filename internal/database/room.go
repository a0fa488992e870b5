package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wkalinowski/huddle/internal/models"
)

// ErrRoomNotFound is returned when a room is absent or has been deactivated.
var ErrRoomNotFound = errors.New("room not found")

func (d *Database) CreateRoom(room *models.Room) error {
	return d.db.Create(room).Error
}

// GetActiveRoom looks up a room by id, ignoring deactivated ones.
func (d *Database) GetActiveRoom(id string) (*models.Room, error) {
	var room models.Room
	err := d.db.First(&room, "id = ? AND active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// DeactivateRoom soft-deletes a room. Messages and join history stay intact.
func (d *Database) DeactivateRoom(id string) error {
	res := d.db.Model(&models.Room{}).Where("id = ? AND active = ?", id, true).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
