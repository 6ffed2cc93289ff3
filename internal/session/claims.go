package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"voltworks/pkg/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is what the dashboard reads out of an auth-service token. Token
// issuing and the rest of the auth protocol live in the external service.
type Claims struct {
	UserID   string
	Name     string
	Email    string
	Role     model.Role
	UserType model.UserType
	Exp      int64
}

// ParseToken validates the HS256 signature and extracts the claims the
// dashboard needs for route gating.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	userType, ok := mapClaims["user_type"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		UserID:   userID,
		UserType: model.UserType(userType),
		Exp:      int64(exp),
	}

	// Optional claims: employees carry a role, customers do not.
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = model.Role(role)
	}

	return claims, nil
}
