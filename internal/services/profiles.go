package services

import (
	"context"
	"time"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/sheets"
)

type UserProfileRepository struct {
	store sheets.RowStore
	stats *sheets.Stats
	now   func() time.Time
}

func NewUserProfileRepository(store sheets.RowStore, stats *sheets.Stats) *UserProfileRepository {
	return &UserProfileRepository{store: store, stats: stats, now: time.Now}
}

// GetByEmail returns the matching profile, or nil when no row matches.
// Absence is not an error.
func (r *UserProfileRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	if email == "" {
		return nil, nil
	}
	return r.find(ctx, func(p models.UserProfile) bool { return p.Email == email })
}

func (r *UserProfileRepository) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	if username == "" {
		return nil, nil
	}
	return r.find(ctx, func(p models.UserProfile) bool { return p.Username == username })
}

// Upsert writes the profile keyed by email: update in place when a row
// with that email exists, append otherwise. Before writing it scans for
// the username on any other email and fails with UsernameTaken without
// touching the store. The check and the write are two separate calls
// with no lock spanning them, so two concurrent upserts claiming the
// same new username can both pass; a documented race.
func (r *UserProfileRepository) Upsert(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	profile.Phase = clampPhase(profile.Phase)
	if profile.Role == "" {
		profile.Role = "student"
	}
	profile.UpdatedAt = r.now().UTC().Format(time.RFC3339)

	if err := r.store.Ensure(ctx, sheets.UsersSheet, sheets.UserHeaders); err != nil {
		return models.UserProfile{}, ErrBackendUnavailable(err)
	}
	rows, err := r.store.ReadRows(ctx, sheets.UsersSheet)
	if err != nil {
		return models.UserProfile{}, ErrBackendUnavailable(err)
	}
	r.stats.Scanned(len(rows))

	existingIndex := -1
	for i, row := range rows {
		existing := sheets.DecodeProfile(row)
		if existing.Username == profile.Username && existing.Email != profile.Email {
			return models.UserProfile{}, ErrUsernameTaken("username already taken")
		}
		if existing.Email == profile.Email {
			existingIndex = i
		}
	}

	if existingIndex >= 0 {
		err = r.store.UpdateRow(ctx, sheets.UsersSheet, existingIndex, sheets.EncodeProfile(profile))
	} else {
		err = r.store.AppendRow(ctx, sheets.UsersSheet, sheets.EncodeProfile(profile))
	}
	if err != nil {
		return models.UserProfile{}, ErrBackendUnavailable(err)
	}
	return profile, nil
}

// ListAll returns the slim {email, username} projection for batch
// enumeration, e.g. the scheduled report run.
func (r *UserProfileRepository) ListAll(ctx context.Context) ([]models.UserRef, error) {
	rows, err := r.store.ReadRows(ctx, sheets.UsersSheet)
	if err != nil {
		return nil, ErrBackendUnavailable(err)
	}
	r.stats.Scanned(len(rows))
	refs := make([]models.UserRef, 0, len(rows))
	for _, row := range rows {
		profile := sheets.DecodeProfile(row)
		refs = append(refs, models.UserRef{Email: profile.Email, Username: profile.Username})
	}
	return refs, nil
}

func (r *UserProfileRepository) find(ctx context.Context, match func(models.UserProfile) bool) (*models.UserProfile, error) {
	rows, err := r.store.ReadRows(ctx, sheets.UsersSheet)
	if err != nil {
		return nil, ErrBackendUnavailable(err)
	}
	r.stats.Scanned(len(rows))
	for _, row := range rows {
		profile := sheets.DecodeProfile(row)
		if match(profile) {
			return &profile, nil
		}
	}
	return nil, nil
}

func clampPhase(phase int) int {
	if phase < 0 {
		return 0
	}
	if phase > 7 {
		return 7
	}
	return phase
}
