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

// RequestService implements the approval-request business surface.
type RequestService struct {
	requestRepo portsrepo.RequestRepositoryFacade
	auditRepo   portsrepo.AuditRepository
	hierarchy   portssvc.HierarchySvc
	guard       approvalGuard
}

// NewRequestService creates a new RequestService.
func NewRequestService(requestRepo portsrepo.RequestRepositoryFacade, auditRepo portsrepo.AuditRepository, userRepo portsrepo.UserReader, hierarchy portssvc.HierarchySvc) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		hierarchy:   hierarchy,
		guard:       approvalGuard{hierarchy: hierarchy, userRepo: userRepo},
	}
}

var _ portssvc.RequestSvcFacade = (*RequestService)(nil)

// CreateRequest creates a PENDING request owned by the caller. Requests are
// raised by field staff; top-level roles review them.
func (s *RequestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, creatorUserID string) (*domain.Request, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.guard.loadActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator.Role.IsTopLevel() {
		return nil, fmt.Errorf("%w: top-level roles do not raise requests", apperrors.ErrForbidden)
	}

	now := time.Now()

	requestDate := req.RequestDate
	if requestDate.IsZero() {
		requestDate = now
	}

	request := domain.Request{
		RequestID:   uuid.New().String(),
		OwnerID:     creatorUserID,
		ClinicID:    req.ClinicID,
		Type:        domain.RequestType(req.Type),
		Title:       req.Title,
		Notes:       req.Notes,
		Status:      domain.StatusPending,
		RequestDate: requestDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		logger.Error("Failed to save request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	logger.Info("Request created", slog.String("request_id", request.RequestID), slog.String("owner_id", creatorUserID))
	return &request, nil
}

// GetRequestByID retrieves a request, enforcing the caller's visibility scope.
func (s *RequestService) GetRequestByID(ctx context.Context, requestID string, callerUserID string) (*domain.Request, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(request.OwnerID) {
		return nil, fmt.Errorf("%w: request is outside the caller's visibility", apperrors.ErrForbidden)
	}
	return request, nil
}

// ListRequests returns the page of requests inside the caller's scope.
func (s *RequestService) ListRequests(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Request, *string, error) {
	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, nil, err
	}
	return s.requestRepo.FindRequests(ctx, toRecordFilter(scope, params))
}

// ApplyAction drives the approval state machine for one request. The guard
// rejects self-decisions and unentitled actors before any write; the
// repository's conditional update settles concurrent decisions, so exactly
// one of two racing approvers succeeds.
func (s *RequestService) ApplyAction(ctx context.Context, requestID string, action string, notes string, actorUserID string) (*domain.Request, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := targetStatusFor(action)
	if err != nil {
		return nil, err
	}
	if target == domain.StatusConverted || target == domain.StatusSettled {
		return nil, fmt.Errorf("%w: action %q does not apply to requests", apperrors.ErrValidation, action)
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	actor, err := s.guard.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorizeTransition(ctx, actor, request.OwnerID, request.Status, target); err != nil {
		return nil, err
	}

	if err := s.requestRepo.TransitionRequestStatus(ctx, requestID, request.Status, target, actorUserID, notes, time.Now()); err != nil {
		return nil, err
	}

	logger.Info("Request transitioned",
		slog.String("request_id", requestID),
		slog.String("from", string(request.Status)),
		slog.String("to", string(target)),
		slog.String("actor_id", actorUserID))

	return s.requestRepo.FindRequestByID(ctx, requestID)
}

// GetRequestHistory returns the audit trail for a visible request.
func (s *RequestService) GetRequestHistory(ctx context.Context, requestID string, callerUserID string) ([]domain.StatusChange, error) {
	// Visibility is enforced by the request lookup.
	if _, err := s.GetRequestByID(ctx, requestID, callerUserID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListStatusChanges(ctx, requestID)
}

// toRecordFilter builds the repository filter from list parameters and the
// resolved scope.
func toRecordFilter(scope domain.VisibilityScope, params dto.ListRecordsParams) portsrepo.RecordFilter {
	filter := portsrepo.RecordFilter{
		Scope:     scope,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != nil {
		status := domain.ApprovalStatus(*params.Status)
		filter.Status = &status
	}
	return filter
}
