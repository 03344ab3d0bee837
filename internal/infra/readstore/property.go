package readstore

import (
	"context"

	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/pgconv"
	"stay-calendar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	getPropertyByID = `SELECT ` + converter.PropertyColumns + ` FROM properties WHERE id = $1`

	// $1 is an ILIKE pattern, empty matching everything.
	searchProperties = `
SELECT ` + converter.PropertyColumns + `
FROM properties
WHERE ($1 = '' OR location ILIKE '%' || $1 || '%')
  AND max_guests >= $2
ORDER BY created_at DESC, id DESC
LIMIT $3`

	searchPropertiesAfter = `
SELECT ` + converter.PropertyColumns + `
FROM properties
WHERE ($1 = '' OR location ILIKE '%' || $1 || '%')
  AND max_guests >= $2
  AND (created_at, id) < ($4, $5)
ORDER BY created_at DESC, id DESC
LIMIT $3`
)

type PropertyReadStore struct {
	db db.DBTX
}

func NewPropertyReadStore(dbtx db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{db: dbtx}
}

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var row converter.PropertyRow
	if err := r.db.QueryRow(ctx, getPropertyByID, id).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}
	return converter.PropertyToDomain(row), nil
}

func (r *PropertyReadStore) Search(ctx context.Context, f queries.PropertyFilter) ([]*property.Property, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if f.After == nil {
		rows, err = r.db.Query(ctx, searchProperties, escapeLike(f.Location), int32(f.MinGuests), int32(f.Limit))
	} else {
		rows, err = r.db.Query(ctx, searchPropertiesAfter, escapeLike(f.Location), int32(f.MinGuests), int32(f.Limit),
			pgconv.TimeToPgtype(f.After.CreatedAt), f.After.ID)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search properties", err)
	}
	defer rows.Close()

	var out []*property.Property
	for rows.Next() {
		var row converter.PropertyRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan property", err)
		}
		out = append(out, converter.PropertyToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate properties", err)
	}
	return out, nil
}
