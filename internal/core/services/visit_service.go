package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
)

// VisitService implements the clinic-visit business surface. Visits have no
// approval lifecycle; they exist for the visibility-filtered read paths and
// the dashboard.
type VisitService struct {
	visitRepo portsrepo.VisitRepositoryFacade
	userRepo  portsrepo.UserReader
	hierarchy portssvc.HierarchySvc
}

// NewVisitService creates a new VisitService.
func NewVisitService(visitRepo portsrepo.VisitRepositoryFacade, userRepo portsrepo.UserReader, hierarchy portssvc.HierarchySvc) *VisitService {
	return &VisitService{
		visitRepo: visitRepo,
		userRepo:  userRepo,
		hierarchy: hierarchy,
	}
}

var _ portssvc.VisitSvcFacade = (*VisitService)(nil)

// CreateVisit logs a visit owned by the caller. Only reps log visits;
// managers review them.
func (s *VisitService) CreateVisit(ctx context.Context, req dto.CreateVisitRequest, creatorUserID string) (*domain.Visit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator.Role != domain.RoleMedicalRep {
		return nil, fmt.Errorf("%w: only medical reps log visits", apperrors.ErrForbidden)
	}

	now := time.Now()
	visitDate := req.VisitDate
	if visitDate.IsZero() {
		visitDate = now
	}

	visit := domain.Visit{
		VisitID:    uuid.New().String(),
		OwnerID:    creatorUserID,
		ClinicID:   req.ClinicID,
		DoctorName: req.DoctorName,
		VisitDate:  visitDate,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.visitRepo.SaveVisit(ctx, visit); err != nil {
		logger.Error("Failed to save visit", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save visit: %w", err)
	}

	logger.Info("Visit logged", slog.String("visit_id", visit.VisitID), slog.String("owner_id", creatorUserID))
	return &visit, nil
}

// GetVisitByID retrieves a visit, enforcing the caller's visibility scope.
func (s *VisitService) GetVisitByID(ctx context.Context, visitID string, callerUserID string) (*domain.Visit, error) {
	visit, err := s.visitRepo.FindVisitByID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(visit.OwnerID) {
		return nil, fmt.Errorf("%w: visit is outside the caller's visibility", apperrors.ErrForbidden)
	}
	return visit, nil
}

// ListVisits returns the page of visits inside the caller's scope.
func (s *VisitService) ListVisits(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Visit, *string, error) {
	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, nil, err
	}
	// Visits carry no status; drop any status filter rather than erroring.
	params.Status = nil
	return s.visitRepo.FindVisits(ctx, toRecordFilter(scope, params))
}
