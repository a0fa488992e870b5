package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// InviteManager signs and verifies the room invite tokens embedded in
// shareable links. Tokens are room-scoped capabilities, not user identities.
type InviteManager struct {
	secretKey     string
	tokenDuration time.Duration
}

type InviteClaims struct {
	RoomID string `json:"roomId"`
	jwt.RegisteredClaims
}

func NewInviteManager(secret string, duration time.Duration) *InviteManager {
	return &InviteManager{secretKey: secret, tokenDuration: duration}
}

// Generate creates a signed invite token for a room.
func (m *InviteManager) Generate(roomID string) (string, error) {
	claims := InviteClaims{
		RoomID: roomID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Verify parses an invite token and returns the room id it grants access to.
func (m *InviteManager) Verify(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &InviteClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*InviteClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.RoomID == "" {
		return "", errors.New("token carries no room")
	}

	return claims.RoomID, nil
}
