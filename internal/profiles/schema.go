package profiles

import (
	"context"
	"fmt"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/models"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS applicant_profiles (
	id                    TEXT PRIMARY KEY,
	display_name          TEXT NOT NULL,
	age                   INTEGER NOT NULL,
	phone                 TEXT NOT NULL UNIQUE,
	city                  TEXT NOT NULL,
	credit_score          INTEGER NOT NULL CHECK (credit_score BETWEEN 300 AND 900),
	kyc_status            TEXT NOT NULL,
	pre_approved_limit    BIGINT NOT NULL CHECK (pre_approved_limit >= 0),
	existing_loan_balance BIGINT NOT NULL DEFAULT 0
)`

const insertProfileSQL = `INSERT INTO applicant_profiles (` + profileColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING`

// EnsureSchema creates the applicant table if needed and inserts seed rows
// that are not there yet. Existing rows are never touched.
func (s *PostgresStore) EnsureSchema(ctx context.Context, seed []models.ApplicantProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewProfileStoreUnavailableError(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, createTableSQL); err != nil {
		return apperrors.NewProfileStoreUnavailableError(fmt.Errorf("create table: %w", err))
	}

	for _, p := range seed {
		_, err := tx.ExecContext(ctx, insertProfileSQL,
			p.ID, p.DisplayName, p.Age, p.Phone, p.City,
			p.CreditScore, p.KYCStatus, p.PreApprovedLimit, p.ExistingLoanBalance,
		)
		if err != nil {
			return apperrors.NewProfileStoreUnavailableError(fmt.Errorf("seed %s: %w", p.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewProfileStoreUnavailableError(err)
	}

	s.logger.Info("applicant schema ready", map[string]interface{}{"seeded": len(seed)})
	return nil
}
