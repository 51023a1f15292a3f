package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
}

func NewLeaveService(db *database.DB, leaveRepository leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:              db,
		LeaveRepository: leaveRepository,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := l.LeaveRepository.Create(ctx, leave.Leave{
		UserID:    userID,
		LeaveType: leave.Type(req.LeaveType),
		StartDate: start,
		EndDate:   end,
		TotalDays: leave.DaysBetween(start, end),
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToResponse(created), nil
}

// GetMyLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	leaves, err := l.LeaveRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves for user: %w", err)
	}

	return toResponses(leaves), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, status *string) ([]leave.LeaveResponse, error) {
	var leaves []leave.Leave
	var err error

	if status != nil && *status != "" {
		statuses := []string{
			string(leave.StatusPending),
			string(leave.StatusApproved),
			string(leave.StatusRejected),
		}
		if !validator.IsInSlice(*status, statuses) {
			return nil, validator.ValidationErrors{{
				Field:   "status",
				Message: "status must be one of PENDING, APPROVED, REJECTED",
			}}
		}
		leaves, err = l.LeaveRepository.ListByStatus(ctx, leave.Status(*status))
	} else {
		leaves, err = l.LeaveRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	return toResponses(leaves), nil
}

// process moves one PENDING request to a terminal status. Processed requests
// never transition again.
func (l *LeaveServiceImpl) process(ctx context.Context, req leave.ProcessLeaveRequest, status leave.Status) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	adminID, err := userIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if request.IsProcessed() {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := time.Now()
	request.Status = status
	request.ApprovedBy = &adminID
	request.Comments = req.Comments
	request.ProcessedAt = &now

	if err := l.LeaveRepository.UpdateStatus(ctx, request); err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToResponse(request), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ProcessLeaveRequest) (leave.LeaveResponse, error) {
	return l.process(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ProcessLeaveRequest) (leave.LeaveResponse, error) {
	return l.process(ctx, req, leave.StatusRejected)
}

// CountPending implements leave.LeaveService.
func (l *LeaveServiceImpl) CountPending(ctx context.Context) (int64, error) {
	return l.LeaveRepository.CountByStatus(ctx, leave.StatusPending)
}

func toResponses(leaves []leave.Leave) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, lv := range leaves {
		responses = append(responses, leave.ToResponse(lv))
	}
	return responses
}
