package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
}

func NewUserService(db *database.DB, userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepository,
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

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check username availability: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		dateOfBirth = &parsed
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		employeeCode, err := s.UserRepository.NextEmployeeCode(txCtx)
		if err != nil {
			return fmt.Errorf("failed to allocate employee code: %w", err)
		}

		created, err = s.UserRepository.Create(txCtx, user.User{
			Username:      req.Username,
			Email:         req.Email,
			PasswordHash:  string(hash),
			Role:          user.Role(req.Role),
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			PhoneNumber:   req.PhoneNumber,
			DateOfBirth:   dateOfBirth,
			EmployeeCode:  employeeCode,
			Department:    req.Department,
			Position:      req.Position,
			DateOfJoining: time.Now(),
			Active:        true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	userData, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context) (user.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	return s.GetUser(ctx, userID)
}

// UpdateProfile implements user.UserService. The ID always comes from the
// authenticated identity, never from the request body.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	req.ID = userID
	return s.UpdateUser(ctx, req)
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter user.ListFilter) (user.ListUsersResponse, error) {
	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return user.ListUsersResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Users:      responses,
	}, nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil {
		existing, err := s.UserRepository.GetByEmail(ctx, *req.Email)
		if err != nil && err != user.ErrUserNotFound {
			return user.UserResponse{}, fmt.Errorf("failed to check email availability: %w", err)
		}
		if err == nil && existing.ID != req.ID {
			return user.UserResponse{}, user.ErrEmailExists
		}
	}

	if err := s.UserRepository.Update(ctx, req); err != nil {
		return user.UserResponse{}, err
	}

	return s.GetUser(ctx, req.ID)
}

// DeactivateUser implements user.UserService.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, id string) error {
	userData, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !userData.Active {
		return user.ErrUserDeactivated
	}

	return s.UserRepository.Deactivate(ctx, id)
}

// GetStats implements user.UserService.
func (s *UserServiceImpl) GetStats(ctx context.Context) (user.UserStatsResponse, error) {
	total, err := s.UserRepository.Count(ctx)
	if err != nil {
		return user.UserStatsResponse{}, fmt.Errorf("failed to count users: %w", err)
	}
	active, err := s.UserRepository.CountActive(ctx)
	if err != nil {
		return user.UserStatsResponse{}, fmt.Errorf("failed to count active users: %w", err)
	}
	employees, err := s.UserRepository.CountByRole(ctx, user.RoleEmployee)
	if err != nil {
		return user.UserStatsResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}
	admins, err := s.UserRepository.CountByRole(ctx, user.RoleAdmin)
	if err != nil {
		return user.UserStatsResponse{}, fmt.Errorf("failed to count admins: %w", err)
	}

	return user.UserStatsResponse{
		TotalUsers:     total,
		ActiveUsers:    active,
		TotalEmployees: employees,
		TotalAdmins:    admins,
	}, nil
}
