package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `l.id, l.user_id, l.leave_type, l.start_date, l.end_date,
	   l.total_days, l.reason, l.status, l.approved_by, l.comments,
	   l.applied_at, l.processed_at,
	   u.first_name || ' ' || u.last_name AS user_name,
	   u.employee_code`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var lv leave.Leave
	err := row.Scan(
		&lv.ID, &lv.UserID, &lv.LeaveType, &lv.StartDate, &lv.EndDate,
		&lv.TotalDays, &lv.Reason, &lv.Status, &lv.ApprovedBy, &lv.Comments,
		&lv.AppliedAt, &lv.ProcessedAt,
		&lv.UserName, &lv.EmployeeCode,
	)
	return lv, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, req leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			id, user_id, leave_type, start_date, end_date,
			total_days, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, applied_at
	`

	req.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.TotalDays,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.AppliedAt)

	if err != nil {
		// 23503: the user_id in the claims no longer resolves to a row.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return leave.Leave{}, user.ErrUserNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	lv, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave by ID: %w", err)
	}

	return lv, nil
}

func (r *leaveRepository) list(ctx context.Context, where string, args ...interface{}) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE ` + where + `
		ORDER BY l.applied_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		lv, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, lv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return leaves, nil
}

// ListByUser implements leave.LeaveRepository.
func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	return r.list(ctx, "l.user_id = $1", userID)
}

// ListByStatus implements leave.LeaveRepository.
func (r *leaveRepository) ListByStatus(ctx context.Context, status leave.Status) ([]leave.Leave, error) {
	return r.list(ctx, "l.status = $1", status)
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepository) ListAll(ctx context.Context) ([]leave.Leave, error) {
	return r.list(ctx, "TRUE")
}

// CountByStatus implements leave.LeaveRepository.
func (r *leaveRepository) CountByStatus(ctx context.Context, status leave.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leaves WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leaves by status: %w", err)
	}

	return count, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, req leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
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
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update leave status: %w", err)
	}

	return nil
}
