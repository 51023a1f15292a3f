package regularization

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/regularization"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type RegularizationServiceImpl struct {
	db *database.DB
	regularization.RegularizationRepository
}

func NewRegularizationService(db *database.DB, regularizationRepository regularization.RegularizationRepository) regularization.RegularizationService {
	return &RegularizationServiceImpl{
		db:                       db,
		RegularizationRepository: regularizationRepository,
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

// Request implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Request(ctx context.Context, req regularization.CreateRegularizationRequest) (regularization.RegularizationResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RegularizationResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return regularization.RegularizationResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.RegularizationRepository.Create(ctx, regularization.Regularization{
		UserID:            userID,
		Date:              date,
		RequestedPunchIn:  req.RequestedPunchIn,
		RequestedPunchOut: req.RequestedPunchOut,
		Reason:            req.Reason,
		Status:            regularization.StatusPending,
	})
	if err != nil {
		return regularization.RegularizationResponse{}, err
	}

	return regularization.ToResponse(created), nil
}

// GetMyRegularizations implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) GetMyRegularizations(ctx context.Context) ([]regularization.RegularizationResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.RegularizationRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list regularizations for user: %w", err)
	}

	return toResponses(requests), nil
}

// List implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) List(ctx context.Context, status *string) ([]regularization.RegularizationResponse, error) {
	var requests []regularization.Regularization
	var err error

	if status != nil && *status != "" {
		statuses := []string{
			string(regularization.StatusPending),
			string(regularization.StatusApproved),
			string(regularization.StatusRejected),
		}
		if !validator.IsInSlice(*status, statuses) {
			return nil, validator.ValidationErrors{{
				Field:   "status",
				Message: "status must be one of PENDING, APPROVED, REJECTED",
			}}
		}
		requests, err = s.RegularizationRepository.ListByStatus(ctx, regularization.Status(*status))
	} else {
		requests, err = s.RegularizationRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list regularizations: %w", err)
	}

	return toResponses(requests), nil
}

// process moves one PENDING request to a terminal status. Processed requests
// never transition again.
func (s *RegularizationServiceImpl) process(ctx context.Context, req regularization.ProcessRegularizationRequest, status regularization.Status) (regularization.RegularizationResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RegularizationResponse{}, err
	}

	adminID, err := userIDFromContext(ctx)
	if err != nil {
		return regularization.RegularizationResponse{}, err
	}

	request, err := s.RegularizationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return regularization.RegularizationResponse{}, err
	}

	if request.IsProcessed() {
		return regularization.RegularizationResponse{}, regularization.ErrRegularizationAlreadyProcessed
	}

	now := time.Now()
	request.Status = status
	request.ApprovedBy = &adminID
	request.Comments = req.Comments
	request.ProcessedAt = &now

	if err := s.RegularizationRepository.UpdateStatus(ctx, request); err != nil {
		return regularization.RegularizationResponse{}, err
	}

	return regularization.ToResponse(request), nil
}

// Approve implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Approve(ctx context.Context, req regularization.ProcessRegularizationRequest) (regularization.RegularizationResponse, error) {
	return s.process(ctx, req, regularization.StatusApproved)
}

// Reject implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) Reject(ctx context.Context, req regularization.ProcessRegularizationRequest) (regularization.RegularizationResponse, error) {
	return s.process(ctx, req, regularization.StatusRejected)
}

// CountPending implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) CountPending(ctx context.Context) (int64, error) {
	return s.RegularizationRepository.CountByStatus(ctx, regularization.StatusPending)
}

func toResponses(requests []regularization.Regularization) []regularization.RegularizationResponse {
	responses := make([]regularization.RegularizationResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, regularization.ToResponse(req))
	}
	return responses
}
