package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/blogsvc/domain"
)

// tokenClaims is the JWT body: the domain payload plus registered claims
type tokenClaims struct {
	domain.TokenPayload
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey  []byte
	issuer     string
	defaultTTL time.Duration
	now        func() time.Time
	entropy    io.Reader
}

// JWTOption customizes the JWT service
type JWTOption func(*JWTServiceImpl)

// WithClock replaces the wall clock used for issuing and validating tokens
func WithClock(now func() time.Time) JWTOption {
	return func(j *JWTServiceImpl) {
		if now != nil {
			j.now = now
		}
	}
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, defaultTTL time.Duration, opts ...JWTOption) *JWTServiceImpl {
	j := &JWTServiceImpl{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		defaultTTL: defaultTTL,
		now:        time.Now,
		entropy:    rand.Reader,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := io.ReadFull(j.entropy, bytes); err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Generate implements domain.TokenService
func (j *JWTServiceImpl) Generate(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = j.defaultTTL
	}
	jti, err := j.generateJTI()
	if err != nil {
		return "", err
	}
	now := j.now()
	claims := tokenClaims{
		TokenPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Verify implements domain.TokenService
func (j *JWTServiceImpl) Verify(tokenString string) domain.DataResult[*domain.TokenPayload] {
	payload, err := j.parse(tokenString)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return domain.FailureData[*domain.TokenPayload](domain.MsgTokenExpired)
		}
		return domain.FailureData[*domain.TokenPayload](domain.MsgNotAuthorized)
	}
	return domain.SuccessData(payload)
}

// parse validates a token and returns its payload
func (j *JWTServiceImpl) parse(tokenString string) (payload *domain.TokenPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload, err = nil, domain.ErrTokenMalformed
		}
	}()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.UserID == "" || claims.Type == "" {
		return nil, domain.ErrTokenMalformed
	}

	p := claims.TokenPayload
	return &p, nil
}

var _ domain.TokenService = (*JWTServiceImpl)(nil)
