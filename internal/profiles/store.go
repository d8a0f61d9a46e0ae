// Package profiles provides read-only access to the pre-registered applicant
// directory.
package profiles

import (
	"context"
	"errors"

	"loan-saarthi/internal/models"
)

// ErrNotFound is returned when no applicant matches a selector.
var ErrNotFound = errors.New("applicant profile not found")

// Store looks applicants up. Implementations never modify profiles.
type Store interface {
	Find(ctx context.Context, sel models.Selector) (models.ApplicantProfile, error)
	List(ctx context.Context) ([]models.ApplicantProfile, error)
}
