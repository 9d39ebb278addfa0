// Package services contains server-side business logic: the profile
// service used by operators and the hooks invoked by the authentication
// engine (UserRegistration, MagicLinkSender, VerificationSender).
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/repomanager"
)

// ProfileService creates, looks up, soft-deletes and restores profiles.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "profiles"),
	}
}

// Create builds a profile carrying only name and persists it. The returned
// profile has its id and creation time set.
func (s *ProfileService) Create(ctx context.Context, name string) (*models.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &common.MissingFieldError{Field: "name"}
	}

	p := models.NewProfile(name)
	if err := s.repomanager.Profiles(s.db).Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "profile created", "profile_id", p.ID)
	return p, nil
}

// Get returns an active profile or a *common.NotFoundError.
func (s *ProfileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, profileLookupError(err, id)
	}
	return p, nil
}

// Delete soft-deletes an active profile and returns it as it is now stored.
func (s *ProfileService) Delete(ctx context.Context, id string) (*models.Profile, error) {
	var p *models.Profile
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Profiles(tx)

		var err error
		if p, err = repo.FindByID(ctx, id); err != nil {
			return profileLookupError(err, id)
		}
		row, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		return profiles.Update(p, row)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "profile deleted", "profile_id", id)
	return p, nil
}

// Restore clears the deletion mark and returns the active profile. Restoring
// an active profile is harmless.
func (s *ProfileService) Restore(ctx context.Context, id string) (*models.Profile, error) {
	var p *models.Profile
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Profiles(tx)
		if err := repo.Restore(ctx, id); err != nil {
			return err
		}

		var err error
		if p, err = repo.FindByID(ctx, id); err != nil {
			return profileLookupError(err, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "profile restored", "profile_id", id)
	return p, nil
}

func profileLookupError(err error, id string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NewNotFoundError("profile not found: %s", id)
	}
	return err
}
