package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/alumbridge/scholarship-service/internal/auth"
	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/kvstore"
	redisrepo "github.com/alumbridge/scholarship-service/internal/repositories/redis"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

// testEnv wires a full service stack against an in-process store.
type testEnv struct {
	manager   ServiceManager
	repo      *redisrepo.Manager
	publisher *events.MockEventPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewRedisStore(client)
	repo := redisrepo.NewRepositoryManager(store)
	publisher := events.NewMockEventPublisher(logger)

	gateway := auth.NewJWTGateway(store, auth.JWTGatewayConfig{
		Secret: []byte("test-secret"),
		Issuer: "scholarship-service-test",
		Expiry: time.Hour,
	}, logger)

	manager := NewServiceManager(Dependencies{
		Repo:      repo,
		Gateway:   gateway,
		Locker:    redislock.New(client),
		Publisher: publisher,
		Logger:    logger,
		Validator: validator.New(),
	})

	return &testEnv{manager: manager, repo: repo, publisher: publisher}
}

func studentSignup(rollNumber string) *validator.SignupRequest {
	return &validator.SignupRequest{
		Role:       "student",
		Name:       "Test Student",
		Phone:      "9876543210",
		Department: "Computer Science",
		Password:   "password123",
		RollNumber: rollNumber,
		Year:       "3",
		Semester:   "6",
	}
}

func alumniSignup(email string) *validator.SignupRequest {
	return &validator.SignupRequest{
		Role:          "alumni",
		Name:          "Test Alumni",
		Department:    "Computer Science",
		Password:      "password123",
		Email:         email,
		PassedOutYear: "2015",
	}
}
