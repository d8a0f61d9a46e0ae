package profiles

import (
	"context"
	"testing"

	"loan-saarthi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_Find(t *testing.T) {
	d := NewSeededDirectory()
	ctx := context.Background()

	tests := []struct {
		name         string
		selector     models.Selector
		expectedName string
		expectErr    error
	}{
		{
			name:         "by id",
			selector:     models.Selector{Kind: models.SelectByID, Key: "1"},
			expectedName: "Rohan Sharma",
		},
		{
			name:         "by phone",
			selector:     models.Selector{Kind: models.SelectByPhone, Key: "9000011111"},
			expectedName: "Vikram Malhotra",
		},
		{
			name:      "unknown phone",
			selector:  models.Selector{Kind: models.SelectByPhone, Key: "1234567890"},
			expectErr: ErrNotFound,
		},
		{
			name:      "unknown id",
			selector:  models.Selector{Kind: models.SelectByID, Key: "99"},
			expectErr: ErrNotFound,
		},
		{
			name:      "unknown selector kind",
			selector:  models.Selector{Kind: "email", Key: "a@b.c"},
			expectErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := d.Find(ctx, tt.selector)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, p.DisplayName)
		})
	}
}

func TestDirectory_ListKeepsOrderAndCopies(t *testing.T) {
	d := NewSeededDirectory()

	list, err := d.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, "Rohan Sharma", list[0].DisplayName)
	assert.Equal(t, "Meera Joshi", list[9].DisplayName)

	list[0].DisplayName = "changed"
	again, _ := d.List(context.Background())
	assert.Equal(t, "Rohan Sharma", again[0].DisplayName)
}

func TestDirectory_SkipsDuplicateIDs(t *testing.T) {
	d := NewDirectory([]models.ApplicantProfile{
		{ID: "a", DisplayName: "First", Phone: "1111111111"},
		{ID: "a", DisplayName: "Second", Phone: "2222222222"},
	})

	list, _ := d.List(context.Background())
	assert.Len(t, list, 1)

	_, err := d.Find(context.Background(), models.Selector{Kind: models.SelectByPhone, Key: "2222222222"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirectory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSeededDirectory().Find(ctx, models.Selector{Kind: models.SelectByID, Key: "1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedProfiles_AreWithinRange(t *testing.T) {
	for _, p := range SeedProfiles() {
		assert.GreaterOrEqual(t, p.CreditScore, 300, p.DisplayName)
		assert.LessOrEqual(t, p.CreditScore, 900, p.DisplayName)
		assert.GreaterOrEqual(t, p.PreApprovedLimit, int64(0), p.DisplayName)
		assert.Len(t, p.Phone, 10, p.DisplayName)
	}
}
