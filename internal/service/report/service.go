package report

import (
	"context"
	"fmt"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/regularization"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type ReportServiceImpl struct {
	db *database.DB
	report.ReportRepository
	user.UserRepository
	leave.LeaveRepository
	regularization.RegularizationRepository
}

func NewReportService(
	db *database.DB,
	reportRepository report.ReportRepository,
	userRepository user.UserRepository,
	leaveRepository leave.LeaveRepository,
	regularizationRepository regularization.RegularizationRepository,
) report.ReportService {
	return &ReportServiceImpl{
		db:                       db,
		ReportRepository:         reportRepository,
		UserRepository:           userRepository,
		LeaveRepository:          leaveRepository,
		RegularizationRepository: regularizationRepository,
	}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetDashboard(ctx context.Context) (report.DashboardStats, error) {
	var stats report.DashboardStats
	var err error

	if stats.TotalUsers, err = s.UserRepository.Count(ctx); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalEmployees, err = s.UserRepository.CountByRole(ctx, user.RoleEmployee); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count employees: %w", err)
	}
	if stats.PendingLeaves, err = s.LeaveRepository.CountByStatus(ctx, leave.StatusPending); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	if stats.PendingRegularizations, err = s.RegularizationRepository.CountByStatus(ctx, regularization.StatusPending); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count pending regularizations: %w", err)
	}
	if stats.PresentToday, err = s.ReportRepository.CountByStatusOnDate(ctx, attendance.StatusPresent, today()); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count present today: %w", err)
	}
	if stats.AbsentToday, err = s.ReportRepository.CountByStatusOnDate(ctx, attendance.StatusAbsent, today()); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count absent today: %w", err)
	}
	if stats.ActiveSessions, err = s.ReportRepository.CountActiveSessions(ctx); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count active sessions: %w", err)
	}

	return stats, nil
}

// GetSummary implements report.ReportService.
func (s *ReportServiceImpl) GetSummary(ctx context.Context, req report.SummaryRequest) (report.SummaryReport, error) {
	var start, end time.Time

	if req.StartDate == "" && req.EndDate == "" {
		end = today()
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		if err := req.Validate(); err != nil {
			return report.SummaryReport{}, err
		}
		start, _ = time.Parse("2006-01-02", req.StartDate)
		end, _ = time.Parse("2006-01-02", req.EndDate)
	}

	statusCounts, err := s.ReportRepository.GetAttendanceStatusCounts(ctx, start, end)
	if err != nil {
		return report.SummaryReport{}, err
	}

	totalHours, overtimeHours, err := s.ReportRepository.GetWorkedHours(ctx, start, end)
	if err != nil {
		return report.SummaryReport{}, err
	}

	employees, err := s.ReportRepository.GetEmployeeSummaries(ctx, start, end)
	if err != nil {
		return report.SummaryReport{}, err
	}

	return report.SummaryReport{
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		GeneratedAt:   time.Now().Format(time.RFC3339),
		StatusCounts:  statusCounts,
		TotalHours:    totalHours,
		OvertimeHours: overtimeHours,
		Employees:     employees,
	}, nil
}
