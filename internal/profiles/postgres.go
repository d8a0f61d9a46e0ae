package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/models"
)

const profileColumns = `id, display_name, age, phone, city, credit_score, kyc_status, pre_approved_limit, existing_loan_balance`

// PostgresStore reads applicants from the applicant_profiles table.
type PostgresStore struct {
	db      *sql.DB
	timeout time.Duration
	logger  logger.Logger
}

func NewPostgresStore(db *sql.DB, timeout time.Duration, log logger.Logger) *PostgresStore {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &PostgresStore{
		db:      db,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "profile-store", "backend": "postgres"}),
	}
}

func (s *PostgresStore) Find(ctx context.Context, sel models.Selector) (models.ApplicantProfile, error) {
	var column string
	switch sel.Kind {
	case models.SelectByID:
		column = "id"
	case models.SelectByPhone:
		column = "phone"
	default:
		return models.ApplicantProfile{}, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM applicant_profiles WHERE %s = $1`, profileColumns, column)
	row := s.db.QueryRowContext(ctx, query, sel.Key)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ApplicantProfile{}, ErrNotFound
	}
	if err != nil {
		s.logger.Error("profile lookup failed", map[string]interface{}{
			"selector": sel.String(),
			"error":    err,
		})
		return models.ApplicantProfile{}, apperrors.NewProfileStoreUnavailableError(err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.ApplicantProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM applicant_profiles ORDER BY display_name, id`)
	if err != nil {
		s.logger.Error("profile listing failed", map[string]interface{}{"error": err})
		return nil, apperrors.NewProfileStoreUnavailableError(err)
	}
	defer rows.Close()

	var out []models.ApplicantProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperrors.NewProfileStoreUnavailableError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewProfileStoreUnavailableError(err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row scanner) (models.ApplicantProfile, error) {
	var p models.ApplicantProfile
	err := row.Scan(
		&p.ID,
		&p.DisplayName,
		&p.Age,
		&p.Phone,
		&p.City,
		&p.CreditScore,
		&p.KYCStatus,
		&p.PreApprovedLimit,
		&p.ExistingLoanBalance,
	)
	return p, err
}
