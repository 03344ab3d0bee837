package repository

import (
	"context"

	"stay-calendar/internal/domain/property"
	"stay-calendar/internal/infra"
	"stay-calendar/internal/infra/db"
	"stay-calendar/internal/infra/repository/converter"
	"stay-calendar/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	createProperty = `
INSERT INTO properties (` + converter.PropertyColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	getPropertyByID = `SELECT ` + converter.PropertyColumns + ` FROM properties WHERE id = $1`
)

type PropertyRepository struct {
	db db.DBTX
}

func NewPropertyRepository(dbtx db.DBTX) *PropertyRepository {
	return &PropertyRepository{db: dbtx}
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	row := converter.PropertyToInfra(p)
	_, err := r.db.Exec(ctx, createProperty,
		row.ID, row.HostID, row.Title, row.Location,
		row.WeekdayPrice, row.WeekendPrice, row.ExtraGuestPrice,
		row.BaseGuests, row.MaxGuests, row.Currency,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create property", err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var row converter.PropertyRow
	if err := r.db.QueryRow(ctx, getPropertyByID, id).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}
	return converter.PropertyToDomain(row), nil
}
