package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/models"
	"github.com/fieldforce/sfm_backend/internal/utils/mapping"
	"github.com/fieldforce/sfm_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const visitColumns = `visit_id, owner_id, clinic_id, doctor_name, visit_date, notes,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxVisitRepository struct {
	BaseRepository
}

func newPgxVisitRepository(db *pgxpool.Pool) portsrepo.VisitRepositoryFacade {
	return &PgxVisitRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.VisitRepositoryFacade = (*PgxVisitRepository)(nil)

func scanVisit(row pgx.Row) (*models.Visit, error) {
	var m models.Visit
	err := row.Scan(
		&m.VisitID,
		&m.OwnerID,
		&m.ClinicID,
		&m.DoctorName,
		&m.VisitDate,
		&m.Notes,
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

func (r *PgxVisitRepository) SaveVisit(ctx context.Context, visit domain.Visit) error {
	m := mapping.ToModelVisit(visit)
	query := `
        INSERT INTO visits (visit_id, owner_id, clinic_id, doctor_name, visit_date, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.VisitID,
		m.OwnerID,
		m.ClinicID,
		m.DoctorName,
		m.VisitDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save visit: %w", err)
	}
	return nil
}

func (r *PgxVisitRepository) FindVisitByID(ctx context.Context, visitID string) (*domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE visit_id = $1;`
	m, err := scanVisit(r.Pool.QueryRow(ctx, query, visitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find visit by ID %s: %w", visitID, err)
	}
	v := mapping.ToDomainVisit(*m)
	return &v, nil
}

func (r *PgxVisitRepository) FindVisits(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Visit, *string, error) {
	clauses, args, limit, err := buildRecordFilter(filter, "visit_date")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	args = append(args, limit+1)
	query := fmt.Sprintf(`
        SELECT %s
        FROM visits
        %s
        ORDER BY visit_date DESC, created_at DESC
        LIMIT $%d;
    `, visitColumns, whereSQL(clauses), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	modelVisits := []models.Visit{}
	for rows.Next() {
		m, err := scanVisit(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		modelVisits = append(modelVisits, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating visit rows: %w", rows.Err())
	}

	var nextToken *string
	if len(modelVisits) > limit {
		modelVisits = modelVisits[:limit]
		last := modelVisits[len(modelVisits)-1]
		token := pagination.EncodeToken(last.VisitDate, last.CreatedAt)
		nextToken = &token
	}

	return mapping.ToDomainVisitSlice(modelVisits), nextToken, nil
}
