package database

import (
	"context"

	"gst-billing/models"
)

// Settings is the single-row profile collection.
type Settings struct {
	*Collection[models.CompanyProfile]
}

// Profile loads the seller profile. It returns ErrNotFound until seeded.
func (s *Settings) Profile(ctx context.Context) (*models.CompanyProfile, error) {
	return s.Get(ctx, models.ProfileID)
}

// SaveProfile replaces the seller profile.
func (s *Settings) SaveProfile(ctx context.Context, profile *models.CompanyProfile) error {
	profile.ID = models.ProfileID
	if err := s.store.db.WithContext(ctx).Save(profile).Error; err != nil {
		return err
	}
	s.store.touched(s.name)
	return nil
}

// EnsureProfile writes DefaultProfile when no profile exists yet and
// reports whether it did.
func (s *Settings) EnsureProfile(ctx context.Context) (bool, error) {
	n, err := s.Count(ctx, Query{Where: "id = ?", Args: []any{models.ProfileID}})
	if err != nil || n > 0 {
		return false, err
	}
	profile := models.DefaultProfile()
	if err := s.Add(ctx, &profile); err != nil {
		return false, err
	}
	return true, nil
}
