package profiles

import (
	"context"

	"loan-saarthi/internal/models"
)

// Directory is an in-memory Store. List keeps insertion order.
type Directory struct {
	byID    map[string]models.ApplicantProfile
	byPhone map[string]models.ApplicantProfile
	ordered []models.ApplicantProfile
}

func NewDirectory(profiles []models.ApplicantProfile) *Directory {
	d := &Directory{
		byID:    make(map[string]models.ApplicantProfile, len(profiles)),
		byPhone: make(map[string]models.ApplicantProfile, len(profiles)),
		ordered: make([]models.ApplicantProfile, 0, len(profiles)),
	}
	for _, p := range profiles {
		if _, dup := d.byID[p.ID]; dup {
			continue
		}
		d.byID[p.ID] = p
		if p.Phone != "" {
			d.byPhone[p.Phone] = p
		}
		d.ordered = append(d.ordered, p)
	}
	return d
}

// NewSeededDirectory returns a Directory holding the demo applicants.
func NewSeededDirectory() *Directory {
	return NewDirectory(SeedProfiles())
}

func (d *Directory) Find(ctx context.Context, sel models.Selector) (models.ApplicantProfile, error) {
	if err := ctx.Err(); err != nil {
		return models.ApplicantProfile{}, err
	}

	var (
		p  models.ApplicantProfile
		ok bool
	)
	switch sel.Kind {
	case models.SelectByID:
		p, ok = d.byID[sel.Key]
	case models.SelectByPhone:
		p, ok = d.byPhone[sel.Key]
	}
	if !ok {
		return models.ApplicantProfile{}, ErrNotFound
	}
	return p, nil
}

func (d *Directory) List(ctx context.Context) ([]models.ApplicantProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.ApplicantProfile, len(d.ordered))
	copy(out, d.ordered)
	return out, nil
}
