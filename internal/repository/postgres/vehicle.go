package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (group_id, plate, model, location, status, daily_rate_cents, insurance_daily_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.GroupID, v.Plate, v.Model, v.Location, v.Status, v.DailyRateCents, v.InsuranceDailyCents, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, group_id, plate, model, location, status, daily_rate_cents, insurance_daily_cents, created_on, updated_on
	          FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.GroupID, &v.Plate, &v.Model, &v.Location, &v.Status, &v.DailyRateCents, &v.InsuranceDailyCents, &v.CreatedOn, &v.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "vehicle %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET group_id=$1, plate=$2, model=$3, location=$4, status=$5, daily_rate_cents=$6, insurance_daily_cents=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, v.GroupID, v.Plate, v.Model, v.Location, v.Status, v.DailyRateCents, v.InsuranceDailyCents, time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	// Vehicles are retired, not removed; reservations keep referencing them.
	_, err := r.db.ExecContext(ctx, `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`, domain.VehicleStatusInactive, time.Now(), id)
	return err
}

func (r *vehicleRepository) ListByGroup(ctx context.Context, groupID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles WHERE group_id = $1`, groupID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, group_id, plate, model, location, status, daily_rate_cents, insurance_daily_cents, created_on, updated_on
	          FROM vehicles WHERE group_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, groupID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.GroupID, &v.Plate, &v.Model, &v.Location, &v.Status, &v.DailyRateCents, &v.InsuranceDailyCents, &v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) GroupMinimums(ctx context.Context) ([]domain.GroupMinimum, error) {
	query := `SELECT group_id, MIN(daily_rate_cents)
	          FROM vehicles
	          WHERE status = $1 AND group_id IS NOT NULL
	          GROUP BY group_id
	          ORDER BY group_id`
	rows, err := r.db.QueryContext(ctx, query, domain.VehicleStatusAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var minimums []domain.GroupMinimum
	for rows.Next() {
		var gm domain.GroupMinimum
		if err := rows.Scan(&gm.GroupID, &gm.MinRateCents); err != nil {
			return nil, err
		}
		minimums = append(minimums, gm)
	}
	return minimums, rows.Err()
}
