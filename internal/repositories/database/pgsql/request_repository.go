package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/models"
	"github.com/fieldforce/sfm_backend/internal/utils/mapping"
	"github.com/fieldforce/sfm_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = `request_id, owner_id, clinic_id, request_type, title, notes, status, approver_id,
		decision_notes, request_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxRequestRepository struct {
	BaseRepository
}

func newPgxRequestRepository(db *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

func scanRequest(row pgx.Row) (*models.Request, error) {
	var m models.Request
	err := row.Scan(
		&m.RequestID,
		&m.OwnerID,
		&m.ClinicID,
		&m.RequestType,
		&m.Title,
		&m.Notes,
		&m.Status,
		&m.ApproverID,
		&m.DecisionNotes,
		&m.RequestDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.Request) error {
	m := mapping.ToModelRequest(request)
	query := `
        INSERT INTO requests (request_id, owner_id, clinic_id, request_type, title, notes, status,
            decision_notes, request_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.OwnerID,
		m.ClinicID,
		m.RequestType,
		m.Title,
		m.Notes,
		m.Status,
		m.DecisionNotes,
		m.RequestDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE request_id = $1;`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request by ID %s: %w", requestID, err)
	}
	req := mapping.ToDomainRequest(*m)
	return &req, nil
}

func (r *PgxRequestRepository) FindRequests(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Request, *string, error) {
	clauses, args, limit, err := buildRecordFilter(filter, "request_date")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	args = append(args, limit+1)
	query := fmt.Sprintf(`
        SELECT %s
        FROM requests
        %s
        ORDER BY request_date DESC, created_at DESC
        LIMIT $%d;
    `, requestColumns, whereSQL(clauses), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	modelRequests := []models.Request{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		modelRequests = append(modelRequests, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating request rows: %w", rows.Err())
	}

	var nextToken *string
	if len(modelRequests) > limit {
		modelRequests = modelRequests[:limit]
		last := modelRequests[len(modelRequests)-1]
		token := pagination.EncodeToken(last.RequestDate, last.CreatedAt)
		nextToken = &token
	}

	return mapping.ToDomainRequestSlice(modelRequests), nextToken, nil
}

// TransitionRequestStatus performs the conditional status update and the
// audit insert in one transaction. The WHERE status = $from clause is the
// arbiter for concurrent decisions: the loser's update matches zero rows.
func (r *PgxRequestRepository) TransitionRequestStatus(ctx context.Context, requestID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
        UPDATE requests
        SET status = $1, approver_id = $2, decision_notes = $3, last_updated_at = $4, last_updated_by = $2
        WHERE request_id = $5 AND status = $6;
    `
	cmdTag, err := tx.Exec(ctx, updateQuery, string(toStatus), actorID, notes, at, requestID, string(fromStatus))
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM requests WHERE request_id = $1);`, requestID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check request existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: request %s is no longer %s", apperrors.ErrInvalidTransition, requestID, fromStatus)
	}

	if err := insertStatusChange(ctx, tx, domain.StatusChange{
		ChangeID:   uuid.New().String(),
		RecordID:   requestID,
		RecordType: "request",
		ActorID:    actorID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Notes:      notes,
		ChangedAt:  at,
	}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
