package auth

import (
	"errors"
	"time"

	"resolvenow_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every access token. Role is included so the auth
// middleware can gate route groups without a user lookup.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// EmailClaims is the payload of email-verification tokens.
type EmailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken issues an access token for the user.
func GenerateToken(userID, role string) (string, error) {
	cfg := config.GetConfig()

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.TTL) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken validates an access token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateEmailToken issues a short-lived token embedded in the email
// verification link.
func GenerateEmailToken(email string) (string, error) {
	cfg := config.GetConfig()

	claims := EmailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseEmailToken validates an email-verification token.
func ParseEmailToken(tokenStr string) (string, error) {
	claims := &EmailClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return []byte(config.GetConfig().JWT.Secret), nil
}
