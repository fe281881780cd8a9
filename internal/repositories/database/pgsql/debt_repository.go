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

const debtColumns = `debt_id, owner_id, clinic_id, amount, notes, status, approver_id,
		decision_notes, source_invoice_id, due_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxDebtRepository struct {
	BaseRepository
}

func newPgxDebtRepository(db *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

func scanDebt(row pgx.Row) (*models.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.OwnerID,
		&m.ClinicID,
		&m.Amount,
		&m.Notes,
		&m.Status,
		&m.ApproverID,
		&m.DecisionNotes,
		&m.SourceInvoiceID,
		&m.DueDate,
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

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
        INSERT INTO debts (debt_id, owner_id, clinic_id, amount, notes, status,
            decision_notes, source_invoice_id, due_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.DebtID,
		m.OwnerID,
		m.ClinicID,
		m.Amount,
		m.Notes,
		m.Status,
		m.DecisionNotes,
		m.SourceInvoiceID,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save debt: %w", err)
	}
	return nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	m, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt by ID %s: %w", debtID, err)
	}
	d := mapping.ToDomainDebt(*m)
	return &d, nil
}

func (r *PgxDebtRepository) FindDebts(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Debt, *string, error) {
	clauses, args, limit, err := buildRecordFilter(filter, "created_at")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	args = append(args, limit+1)
	query := fmt.Sprintf(`
        SELECT %s
        FROM debts
        %s
        ORDER BY created_at DESC
        LIMIT $%d;
    `, debtColumns, whereSQL(clauses), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	modelDebts := []models.Debt{}
	for rows.Next() {
		m, err := scanDebt(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		modelDebts = append(modelDebts, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating debt rows: %w", rows.Err())
	}

	var nextToken *string
	if len(modelDebts) > limit {
		modelDebts = modelDebts[:limit]
		last := modelDebts[len(modelDebts)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CreatedAt)
		nextToken = &token
	}

	return mapping.ToDomainDebtSlice(modelDebts), nextToken, nil
}

func (r *PgxDebtRepository) TransitionDebtStatus(ctx context.Context, debtID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
        UPDATE debts
        SET status = $1, approver_id = $2, decision_notes = $3, last_updated_at = $4, last_updated_by = $2
        WHERE debt_id = $5 AND status = $6;
    `
	cmdTag, err := tx.Exec(ctx, updateQuery, string(toStatus), actorID, notes, at, debtID, string(fromStatus))
	if err != nil {
		return fmt.Errorf("failed to update debt status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM debts WHERE debt_id = $1);`, debtID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check debt existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: debt %s is no longer %s", apperrors.ErrInvalidTransition, debtID, fromStatus)
	}

	if err := insertStatusChange(ctx, tx, domain.StatusChange{
		ChangeID:   uuid.New().String(),
		RecordID:   debtID,
		RecordType: "debt",
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
