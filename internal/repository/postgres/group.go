package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type vehicleGroupRepository struct {
	db *sql.DB
}

func NewVehicleGroupRepository(db *sql.DB) repository.VehicleGroupRepository {
	return &vehicleGroupRepository{db: db}
}

func (r *vehicleGroupRepository) Create(ctx context.Context, g *domain.VehicleGroup) error {
	query := `INSERT INTO vehicle_groups (code, name, category) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, g.Code, g.Name, g.Category).Scan(&g.ID)
}

func (r *vehicleGroupRepository) GetByID(ctx context.Context, id int32) (*domain.VehicleGroup, error) {
	g := &domain.VehicleGroup{}
	query := `SELECT id, code, name, category FROM vehicle_groups WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Code, &g.Name, &g.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "vehicle group %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *vehicleGroupRepository) List(ctx context.Context) ([]domain.VehicleGroup, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name, category FROM vehicle_groups ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.VehicleGroup
	for rows.Next() {
		var g domain.VehicleGroup
		if err := rows.Scan(&g.ID, &g.Code, &g.Name, &g.Category); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *vehicleGroupRepository) Update(ctx context.Context, g *domain.VehicleGroup) error {
	query := `UPDATE vehicle_groups SET code=$1, name=$2, category=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, g.Code, g.Name, g.Category, g.ID)
	return err
}

func (r *vehicleGroupRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_groups WHERE id=$1`, id)
	return err
}
