package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumbridge/scholarship-service/internal/kvstore"
)

const credentialKeyPrefix = "auth:handle:"

// credentialRecord is the stored credential row for one handle.
type credentialRecord struct {
	ID         string    `json:"id"`
	Handle     string    `json:"handle"`
	SecretHash string    `json:"secretHash"`
	CreatedAt  time.Time `json:"createdAt"`
}

// JWTGatewayConfig configures the local identity gateway.
type JWTGatewayConfig struct {
	Secret []byte
	Issuer string
	Expiry time.Duration
}

// Claims is the token payload issued by the local gateway.
type Claims struct {
	Handle string `json:"handle"`
	jwt.RegisteredClaims
}

// JWTGateway is the default Gateway implementation. Credentials are bcrypt
// hashes stored in the key-value store; bearer tokens are HS256 JWTs.
type JWTGateway struct {
	store  kvstore.Store
	config JWTGatewayConfig
	logger *slog.Logger
}

func NewJWTGateway(store kvstore.Store, config JWTGatewayConfig, logger *slog.Logger) *JWTGateway {
	return &JWTGateway{store: store, config: config, logger: logger}
}

func (g *JWTGateway) Provision(ctx context.Context, handle, secret string) (string, error) {
	key := credentialKeyPrefix + handle

	var existing credentialRecord
	err := g.store.Get(ctx, key, &existing)
	if err == nil {
		return "", ErrDuplicateHandle
	}
	if !errors.Is(err, kvstore.ErrKeyNotFound) {
		return "", fmt.Errorf("credential lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}

	rec := credentialRecord{
		ID:         uuid.NewString(),
		Handle:     handle,
		SecretHash: string(hash),
		CreatedAt:  time.Now().UTC(),
	}
	if err := g.store.Set(ctx, key, rec); err != nil {
		return "", fmt.Errorf("store credential: %w", err)
	}

	g.logger.Info("credentials provisioned", "handle", handle, "user_id", rec.ID)
	return rec.ID, nil
}

func (g *JWTGateway) Authenticate(ctx context.Context, handle, secret string) (string, string, error) {
	var rec credentialRecord
	if err := g.store.Get(ctx, credentialKeyPrefix+handle, &rec); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("credential lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.SecretHash), []byte(secret)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err := g.issueToken(&rec)
	if err != nil {
		return "", "", err
	}
	return token, rec.ID, nil
}

func (g *JWTGateway) Verify(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.config.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (g *JWTGateway) issueToken(rec *credentialRecord) (string, error) {
	now := time.Now()
	claims := &Claims{
		Handle: rec.Handle,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rec.ID,
			Issuer:    g.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.config.Expiry)),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
