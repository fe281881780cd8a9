package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// VisitSvcFacade is the business surface for clinic visits.
type VisitSvcFacade interface {
	// CreateVisit logs a visit owned by the caller. Only reps log visits.
	CreateVisit(ctx context.Context, req dto.CreateVisitRequest, creatorUserID string) (*domain.Visit, error)

	// GetVisitByID retrieves a visit the caller is entitled to see.
	GetVisitByID(ctx context.Context, visitID string, callerUserID string) (*domain.Visit, error)

	// ListVisits returns the page of visits inside the caller's visibility
	// scope.
	ListVisits(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Visit, *string, error)
}
