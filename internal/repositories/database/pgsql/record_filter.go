package pgsql

import (
	"fmt"
	"strings"
	"time"

	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/utils/pagination"
)

const defaultPageSize = 20

// buildRecordFilter renders the shared list-filter conditions (visibility
// scope, status, inclusive date range, keyset page boundary) into WHERE
// clauses and bind arguments. dateColumn is the record's own business date
// column; it pairs with created_at to form the keyset ordering.
func buildRecordFilter(filter portsrepo.RecordFilter, dateColumn string) (clauses []string, args []any, limit int, err error) {
	if !filter.Scope.Unrestricted {
		args = append(args, filter.Scope.OwnerIDs)
		clauses = append(clauses, fmt.Sprintf("owner_id = ANY($%d)", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("%s >= $%d", dateColumn, len(args)))
	}
	if filter.DateTo != nil {
		// date_to binds at day granularity (midnight). Push the bound to the
		// next midnight so every timestamp on the date_to day stays in range.
		args = append(args, filter.DateTo.Add(24*time.Hour))
		clauses = append(clauses, fmt.Sprintf("%s < $%d", dateColumn, len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		recordDate, createdAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, 0, decodeErr
		}
		args = append(args, recordDate, createdAt)
		clauses = append(clauses, fmt.Sprintf("(%s, created_at) < ($%d, $%d)", dateColumn, len(args)-1, len(args)))
	}

	limit = filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	return clauses, args, limit, nil
}

// whereSQL joins filter clauses into a WHERE fragment, empty when there are
// no conditions.
func whereSQL(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}
