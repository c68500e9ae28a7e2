// Package jwt выпускает и проверяет HS256 токены сессии GreenControl.
//
// Токен содержит идентификатор и почту пользователя, а также уникальный jti.
package jwt

import (
	"time"
)

// Maker выпускает и разбирает токены.
type Maker interface {
	GenerateToken(userID int64, email string) (string, error)
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на секретном ключе и TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	issuer    string
}

// NewJWTMaker создаёт MakerImpl.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		issuer:    "greencontrol",
	}
}
