package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viajastore/backend/internal/audit"
	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/repo"
)

// AuditService loads every agency and trip and runs the slug audit over the
// snapshot. It never writes.
type AuditService struct {
	agencies repo.AgencyRepo
	trips    repo.TripRepo
	log      *slog.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(agencies repo.AgencyRepo, trips repo.TripRepo, log *slog.Logger) *AuditService {
	return &AuditService{agencies: agencies, trips: trips, log: log}
}

// Run returns the audit result for the current contents of both collections.
func (s *AuditService) Run(ctx context.Context) (audit.Result, error) {
	agencies, err := s.agencies.ListAll(ctx)
	if err != nil {
		return audit.Result{}, fmt.Errorf("service.AuditService.Run: %w", err)
	}
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		return audit.Result{}, fmt.Errorf("service.AuditService.Run: %w", err)
	}

	agencyRecords := make([]domain.SlugRecord, len(agencies))
	for i, a := range agencies {
		agencyRecords[i] = a.SlugRecord()
	}
	tripRecords := make([]domain.SlugRecord, len(trips))
	for i, t := range trips {
		tripRecords[i] = t.SlugRecord()
	}

	result := audit.Analyze(agencyRecords, tripRecords)

	s.log.InfoContext(ctx, "slug audit completed",
		"agencies", len(agencies),
		"trips", len(trips),
		"total_issues", result.Summary.TotalIssues,
		"critical_issues", result.Summary.CriticalIssues,
		"warnings", result.Summary.Warnings,
	)
	return result, nil
}
