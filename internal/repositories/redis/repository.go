// Package redis implements the repositories on the key-value store using the
// fixed key layout:
//
//	user:<id>                   profile record
//	student:rollNumber:<n>      roll number -> identity id
//	alumni:email:<e>            email -> identity id
//	scholarship:<studentId>     funding record
//	contribution:<id>           ledger entry
package redis

import (
	"context"

	"github.com/alumbridge/scholarship-service/internal/kvstore"
	"github.com/alumbridge/scholarship-service/internal/repositories"
)

type Manager struct {
	store        kvstore.Store
	profile      *profileRepository
	scholarship  *scholarshipRepository
	contribution *contributionRepository
}

func NewRepositoryManager(store kvstore.Store) *Manager {
	return &Manager{
		store:        store,
		profile:      &profileRepository{store: store},
		scholarship:  &scholarshipRepository{store: store},
		contribution: &contributionRepository{store: store},
	}
}

func (m *Manager) Profile() repositories.ProfileRepository           { return m.profile }
func (m *Manager) Scholarship() repositories.ScholarshipRepository   { return m.scholarship }
func (m *Manager) Contribution() repositories.ContributionRepository { return m.contribution }

func (m *Manager) Ping(ctx context.Context) error { return m.store.Ping(ctx) }
func (m *Manager) Close() error                   { return m.store.Close() }
