package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffsync/attendance-backend-go/internal/domain/regularization"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type regularizationRepository struct {
	db *database.DB
}

func NewRegularizationRepository(db *database.DB) regularization.RegularizationRepository {
	return &regularizationRepository{db: db}
}

const regularizationColumns = `r.id, r.user_id, r.date, r.requested_punch_in,
	   r.requested_punch_out, r.reason, r.status, r.approved_by, r.comments,
	   r.requested_at, r.processed_at,
	   u.first_name || ' ' || u.last_name AS user_name,
	   u.employee_code`

func scanRegularization(row pgx.Row) (regularization.Regularization, error) {
	var reg regularization.Regularization
	err := row.Scan(
		&reg.ID, &reg.UserID, &reg.Date, &reg.RequestedPunchIn,
		&reg.RequestedPunchOut, &reg.Reason, &reg.Status, &reg.ApprovedBy,
		&reg.Comments, &reg.RequestedAt, &reg.ProcessedAt,
		&reg.UserName, &reg.EmployeeCode,
	)
	return reg, err
}

// Create implements regularization.RegularizationRepository.
func (r *regularizationRepository) Create(ctx context.Context, req regularization.Regularization) (regularization.Regularization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO regularizations (
			id, user_id, date, requested_punch_in, requested_punch_out,
			reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, requested_at
	`

	req.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.Date,
		req.RequestedPunchIn,
		req.RequestedPunchOut,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.RequestedAt)

	if err != nil {
		// 23503: the user_id in the claims no longer resolves to a row.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return regularization.Regularization{}, user.ErrUserNotFound
		}
		return regularization.Regularization{}, fmt.Errorf("failed to create regularization request: %w", err)
	}

	return req, nil
}

// GetByID implements regularization.RegularizationRepository.
func (r *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Regularization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularizations r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	reg, err := scanRegularization(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return regularization.Regularization{}, regularization.ErrRegularizationNotFound
		}
		return regularization.Regularization{}, fmt.Errorf("failed to get regularization by ID: %w", err)
	}

	return reg, nil
}

func (r *regularizationRepository) list(ctx context.Context, where string, args ...interface{}) ([]regularization.Regularization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularizations r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE ` + where + `
		ORDER BY r.requested_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query regularizations: %w", err)
	}
	defer rows.Close()

	var regularizations []regularization.Regularization
	for rows.Next() {
		reg, err := scanRegularization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan regularization: %w", err)
		}
		regularizations = append(regularizations, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return regularizations, nil
}

// ListByUser implements regularization.RegularizationRepository.
func (r *regularizationRepository) ListByUser(ctx context.Context, userID string) ([]regularization.Regularization, error) {
	return r.list(ctx, "r.user_id = $1", userID)
}

// ListByStatus implements regularization.RegularizationRepository.
func (r *regularizationRepository) ListByStatus(ctx context.Context, status regularization.Status) ([]regularization.Regularization, error) {
	return r.list(ctx, "r.status = $1", status)
}

// ListAll implements regularization.RegularizationRepository.
func (r *regularizationRepository) ListAll(ctx context.Context) ([]regularization.Regularization, error) {
	return r.list(ctx, "TRUE")
}

// CountByStatus implements regularization.RegularizationRepository.
func (r *regularizationRepository) CountByStatus(ctx context.Context, status regularization.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM regularizations WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count regularizations by status: %w", err)
	}

	return count, nil
}

// UpdateStatus implements regularization.RegularizationRepository.
func (r *regularizationRepository) UpdateStatus(ctx context.Context, req regularization.Regularization) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE regularizations
		SET status = $1, approved_by = $2, comments = $3, processed_at = $4
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status,
		req.ApprovedBy,
		req.Comments,
		req.ProcessedAt,
		req.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return regularization.ErrRegularizationNotFound
		}
		return fmt.Errorf("failed to update regularization status: %w", err)
	}

	return nil
}
