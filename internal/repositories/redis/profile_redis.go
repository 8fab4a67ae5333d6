package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alumbridge/scholarship-service/internal/kvstore"
	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
)

const (
	userKeyPrefix       = "user:"
	rollNumberKeyPrefix = "student:rollNumber:"
	emailKeyPrefix      = "alumni:email:"
)

type profileRepository struct {
	store kvstore.Store
}

// Create persists the profile and its secondary lookup index so later
// resolution does not require a directory scan.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.store.Set(ctx, userKeyPrefix+profile.ID, profile); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}

	switch {
	case profile.Student != nil:
		if err := r.store.Set(ctx, rollNumberKeyPrefix+profile.Student.RollNumber, profile.ID); err != nil {
			return fmt.Errorf("store roll number index: %w", err)
		}
	case profile.Alumni != nil:
		if err := r.store.Set(ctx, emailKeyPrefix+profile.Alumni.Email, profile.ID); err != nil {
			return fmt.Errorf("store email index: %w", err)
		}
	}

	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.store.Get(ctx, userKeyPrefix+id, &profile); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	values, err := r.store.GetByPrefix(ctx, userKeyPrefix)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.Profile, 0, len(values))
	for _, v := range values {
		var p models.Profile
		if err := json.Unmarshal(v, &p); err != nil {
			// Skip malformed rows rather than failing the whole listing.
			continue
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

func (r *profileRepository) ResolveRollNumber(ctx context.Context, rollNumber string) (string, error) {
	return r.resolveIndex(ctx, rollNumberKeyPrefix+rollNumber)
}

func (r *profileRepository) ResolveEmail(ctx context.Context, email string) (string, error) {
	return r.resolveIndex(ctx, emailKeyPrefix+email)
}

func (r *profileRepository) resolveIndex(ctx context.Context, key string) (string, error) {
	var id string
	if err := r.store.Get(ctx, key, &id); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return "", repositories.ErrNotFound
		}
		return "", err
	}
	return id, nil
}
