package pgsql

import (
	"context"
	"fmt"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/models"
	"github.com/fieldforce/sfm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// insertStatusChange appends one audit entry inside the caller's transaction.
// Every status transition goes through this, so the audit log and the record
// tables can never disagree.
func insertStatusChange(ctx context.Context, tx pgx.Tx, change domain.StatusChange) error {
	query := `
        INSERT INTO status_changes (change_id, record_id, record_type, actor_id, from_status, to_status, notes, changed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := tx.Exec(ctx, query,
		change.ChangeID,
		change.RecordID,
		change.RecordType,
		change.ActorID,
		string(change.FromStatus),
		string(change.ToStatus),
		change.Notes,
		change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status change: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListStatusChanges(ctx context.Context, recordID string) ([]domain.StatusChange, error) {
	query := `
        SELECT change_id, record_id, record_type, actor_id, from_status, to_status, notes, changed_at
        FROM status_changes
        WHERE record_id = $1
        ORDER BY changed_at;
    `
	rows, err := r.Pool.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status changes: %w", err)
	}
	defer rows.Close()

	modelChanges := []models.StatusChange{}
	for rows.Next() {
		var m models.StatusChange
		err := rows.Scan(
			&m.ChangeID,
			&m.RecordID,
			&m.RecordType,
			&m.ActorID,
			&m.FromStatus,
			&m.ToStatus,
			&m.Notes,
			&m.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status change row: %w", err)
		}
		modelChanges = append(modelChanges, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating status change rows: %w", rows.Err())
	}

	return mapping.ToDomainStatusChangeSlice(modelChanges), nil
}
