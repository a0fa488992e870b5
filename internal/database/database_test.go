package database

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wkalinowski/huddle/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.Room{}, &models.Message{}, &models.Participant{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return NewDatabase(db)
}

func createTestRoom(t *testing.T, d *Database, id string) *models.Room {
	t.Helper()

	room := &models.Room{
		ID:        id,
		Name:      "Team Standup",
		Mode:      models.ModeChat,
		Creator:   "alice",
		CreatedAt: time.Now(),
		Active:    true,
	}
	if err := d.CreateRoom(room); err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	return room
}

func TestGetActiveRoom(t *testing.T) {
	d := setupTestDB(t)
	createTestRoom(t, d, "room_abc")

	room, err := d.GetActiveRoom("room_abc")
	if err != nil {
		t.Fatalf("GetActiveRoom failed: %v", err)
	}
	if room.Name != "Team Standup" || room.Mode != models.ModeChat || room.Creator != "alice" {
		t.Errorf("Unexpected room: %+v", room)
	}
}

func TestGetActiveRoomNotFound(t *testing.T) {
	d := setupTestDB(t)

	if _, err := d.GetActiveRoom("room_missing"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestGetActiveRoomIgnoresDeactivated(t *testing.T) {
	d := setupTestDB(t)
	createTestRoom(t, d, "room_abc")

	if err := d.DeactivateRoom("room_abc"); err != nil {
		t.Fatalf("DeactivateRoom failed: %v", err)
	}

	if _, err := d.GetActiveRoom("room_abc"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Deactivated room should be invisible, got %v", err)
	}

	if err := d.DeactivateRoom("room_abc"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Second deactivation should report not found, got %v", err)
	}
}

func TestSaveMessageAssignsMonotonicIDs(t *testing.T) {
	d := setupTestDB(t)
	createTestRoom(t, d, "room_abc")

	var lastID uint
	for i := 0; i < 3; i++ {
		msg := &models.Message{
			RoomID:    "room_abc",
			Author:    "alice",
			Content:   "hello",
			Timestamp: time.Now().UTC(),
		}
		if err := d.SaveMessage(msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
		if msg.ID <= lastID {
			t.Errorf("Expected increasing ids, got %d after %d", msg.ID, lastID)
		}
		lastID = msg.ID
	}
}

func TestRecentMessagesChronologicalWithLimit(t *testing.T) {
	d := setupTestDB(t)
	createTestRoom(t, d, "room_abc")

	contents := []string{"one", "two", "three", "four"}
	for _, content := range contents {
		msg := &models.Message{
			RoomID:    "room_abc",
			Author:    "alice",
			Content:   content,
			Timestamp: time.Now().UTC(),
		}
		if err := d.SaveMessage(msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	messages, err := d.RecentMessages("room_abc", 2)
	if err != nil {
		t.Fatalf("RecentMessages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "three" || messages[1].Content != "four" {
		t.Errorf("Expected the last two messages oldest-first, got %q, %q",
			messages[0].Content, messages[1].Content)
	}
	if messages[0].ID >= messages[1].ID {
		t.Errorf("Expected ascending ids, got %d then %d", messages[0].ID, messages[1].ID)
	}
}

func TestRecentMessagesScopedToRoom(t *testing.T) {
	d := setupTestDB(t)
	createTestRoom(t, d, "room_abc")
	createTestRoom(t, d, "room_def")

	for _, roomID := range []string{"room_abc", "room_def"} {
		msg := &models.Message{RoomID: roomID, Author: "alice", Content: roomID, Timestamp: time.Now().UTC()}
		if err := d.SaveMessage(msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	messages, err := d.RecentMessages("room_abc", 10)
	if err != nil {
		t.Fatalf("RecentMessages failed: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "room_abc" {
		t.Errorf("Expected only room_abc messages, got %+v", messages)
	}
}

func TestDistinctParticipantsMostRecentFirst(t *testing.T) {
	d := setupTestDB(t)
	createTestRoom(t, d, "room_abc")

	for _, username := range []string{"alice", "bob", "alice"} {
		if err := d.RecordJoin("room_abc", username); err != nil {
			t.Fatalf("RecordJoin failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	participants, err := d.DistinctParticipants("room_abc")
	if err != nil {
		t.Fatalf("DistinctParticipants failed: %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("Expected 2 distinct usernames, got %v", participants)
	}
	// alice rejoined last, so she sorts first.
	if participants[0] != "alice" || participants[1] != "bob" {
		t.Errorf("Expected [alice bob], got %v", participants)
	}
}
