package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

// MinSecretLength is the shortest HMAC key accepted for signing tokens.
const MinSecretLength = 32

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWeakSecret   = fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
)

// Claims carries the dashboard role next to the standard claims. The user id
// travels in the subject.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}, nil
}

// GenerateSecret returns a random key for processes that run without
// JWT_SECRET. Tokens signed with it die with the process.
func GenerateSecret() (string, error) {
	b := make([]byte, MinSecretLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Issue returns a signed token for actor, valid from now for the configured TTL.
func (t *Tokens) Issue(actor domain.Actor, now time.Time) (string, error) {
	if actor.UserID == "" || !actor.Role.Valid() {
		return "", fmt.Errorf("%w: actor needs a user id and a known role", ErrInvalidToken)
	}

	claims := Claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies raw and returns the actor it was issued for.
func (t *Tokens) Parse(raw string) (domain.Actor, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return domain.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return domain.Actor{}, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}
	return domain.Actor{UserID: claims.Subject, Role: claims.Role}, nil
}
