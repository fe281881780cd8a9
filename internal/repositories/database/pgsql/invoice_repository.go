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

const invoiceColumns = `invoice_id, owner_id, clinic_id, amount, description, status, approver_id,
		decision_notes, debt_id, invoice_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.OwnerID,
		&m.ClinicID,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.ApproverID,
		&m.DecisionNotes,
		&m.DebtID,
		&m.InvoiceDate,
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

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
        INSERT INTO invoices (invoice_id, owner_id, clinic_id, amount, description, status,
            decision_notes, invoice_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.OwnerID,
		m.ClinicID,
		m.Amount,
		m.Description,
		m.Status,
		m.DecisionNotes,
		m.InvoiceDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(*m)
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoices(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Invoice, *string, error) {
	clauses, args, limit, err := buildRecordFilter(filter, "invoice_date")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	args = append(args, limit+1)
	query := fmt.Sprintf(`
        SELECT %s
        FROM invoices
        %s
        ORDER BY invoice_date DESC, created_at DESC
        LIMIT $%d;
    `, invoiceColumns, whereSQL(clauses), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		modelInvoices = append(modelInvoices, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	var nextToken *string
	if len(modelInvoices) > limit {
		modelInvoices = modelInvoices[:limit]
		last := modelInvoices[len(modelInvoices)-1]
		token := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		nextToken = &token
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nextToken, nil
}

func (r *PgxInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.transitionInTx(ctx, tx, invoiceID, fromStatus, toStatus, actorID, notes, at, nil); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ConvertInvoiceToDebt performs the APPROVED -> CONVERTED transition and
// inserts the resulting debt in the same transaction. If the conditional
// update loses a race the debt insert never happens.
func (r *PgxInvoiceRepository) ConvertInvoiceToDebt(ctx context.Context, invoiceID string, debt domain.Debt, actorID, notes string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.convertInTx(ctx, tx, invoiceID, debt, actorID, notes, at); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// convertInTx runs the conversion inside an open transaction: the invoice's
// conditional CONVERTED update, the debt insert, and a creation audit entry
// for the debt so its history starts at birth.
func (r *PgxInvoiceRepository) convertInTx(ctx context.Context, tx pgx.Tx, invoiceID string, debt domain.Debt, actorID, notes string, at time.Time) error {
	if err := r.transitionInTx(ctx, tx, invoiceID, domain.StatusApproved, domain.StatusConverted, actorID, notes, at, &debt.DebtID); err != nil {
		return err
	}

	m := mapping.ToModelDebt(debt)
	insertDebt := `
        INSERT INTO debts (debt_id, owner_id, clinic_id, amount, notes, status,
            decision_notes, source_invoice_id, due_date, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := tx.Exec(ctx, insertDebt,
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
		return fmt.Errorf("failed to insert converted debt: %w", err)
	}

	return insertStatusChange(ctx, tx, domain.StatusChange{
		ChangeID:   uuid.New().String(),
		RecordID:   debt.DebtID,
		RecordType: "debt",
		ActorID:    actorID,
		FromStatus: "",
		ToStatus:   debt.Status,
		Notes:      fmt.Sprintf("created from invoice %s", invoiceID),
		ChangedAt:  at,
	})
}

// transitionInTx runs the conditional status update and audit insert inside
// an open transaction. debtID, when set, is stamped onto the invoice row.
func (r *PgxInvoiceRepository) transitionInTx(ctx context.Context, tx pgx.Tx, invoiceID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time, debtID *string) error {
	updateQuery := `
        UPDATE invoices
        SET status = $1, approver_id = $2, decision_notes = $3, debt_id = COALESCE($4, debt_id),
            last_updated_at = $5, last_updated_by = $2
        WHERE invoice_id = $6 AND status = $7;
    `
	cmdTag, err := tx.Exec(ctx, updateQuery, string(toStatus), actorID, notes, debtID, at, invoiceID, string(fromStatus))
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_id = $1);`, invoiceID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check invoice existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: invoice %s is no longer %s", apperrors.ErrInvalidTransition, invoiceID, fromStatus)
	}

	return insertStatusChange(ctx, tx, domain.StatusChange{
		ChangeID:   uuid.New().String(),
		RecordID:   invoiceID,
		RecordType: "invoice",
		ActorID:    actorID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Notes:      notes,
		ChangedAt:  at,
	})
}
