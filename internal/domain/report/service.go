package report

import "context"

// ReportService defines business logic for admin reporting
type ReportService interface {
	// GetDashboard returns the admin landing-page counters
	GetDashboard(ctx context.Context) (DashboardStats, error)

	// GetSummary generates an aggregate report over an inclusive date range.
	// An empty range defaults to the first of the current month through today.
	GetSummary(ctx context.Context, req SummaryRequest) (SummaryReport, error)
}
