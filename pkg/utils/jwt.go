package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

type AdminClaims struct {
	Username string
	IsAdmin  bool
}

func CreateJWTToken(username string, isAdmin bool, jwtSecretKey string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["isAdmin"] = isAdmin
	claims["username"] = username
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken checks the signature and expiry of tokenString.
func ParseJWTToken(tokenString string, jwtSecretKey string) (AdminClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		return AdminClaims{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return AdminClaims{}, fmt.Errorf("invalid token claims")
	}

	isAdmin, _ := claims["isAdmin"].(bool)
	username, _ := claims["username"].(string)

	return AdminClaims{Username: username, IsAdmin: isAdmin}, nil
}
