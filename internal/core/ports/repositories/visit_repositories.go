package repositories

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// VisitReader defines read operations for visits.
type VisitReader interface {
	// FindVisitByID retrieves a specific visit by its ID.
	FindVisitByID(ctx context.Context, visitID string) (*domain.Visit, error)

	// FindVisits retrieves a page of visits matching the filter, newest first,
	// plus the next-page token.
	FindVisits(ctx context.Context, filter RecordFilter) ([]domain.Visit, *string, error)
}

// VisitWriter defines write operations for visits.
type VisitWriter interface {
	// SaveVisit persists a new visit.
	SaveVisit(ctx context.Context, visit domain.Visit) error
}

// VisitRepositoryFacade combines all visit-related repository interfaces.
type VisitRepositoryFacade interface {
	VisitReader
	VisitWriter
}
