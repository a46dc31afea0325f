package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lotopos/animalitos-pos-backend/internal/config"
)

// GenerateJWT mints the session token for an authenticated operator. The
// till binding travels in the claims so every protected endpoint can read
// it without another lookup.
func GenerateJWT(operatorID, username, tillID string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":      operatorID,
		"username": username,
		"tillId":   tillID,
		"exp":      time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT parses and validates a session token, returning its claims.
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// serialAlphabet deliberately omits lookalike characters so the serial can
// be read back from a thermal print.
const serialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateSerial produces an upper-case random serial of the given length
// from crypto/rand. Serials are the secret credential printed on the
// physical ticket; they must not be predictable.
func GenerateSerial(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = serialAlphabet[int(b)%len(serialAlphabet)]
	}
	return string(buf), nil
}
