package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

const couponColumns = `id, code, discount_type, discount_value, min_days, max_days, valid_from, valid_until, is_public, is_active, created_on, updated_on`

func scanCoupon(row *sql.Row) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinDays, &c.MaxDays, &c.ValidFrom, &c.ValidUntil, &c.IsPublic, &c.IsActive, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `INSERT INTO coupons (code, discount_type, discount_value, min_days, max_days, valid_from, valid_until, is_public, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Code, c.DiscountType, c.DiscountValue, c.MinDays, c.MaxDays, c.ValidFrom, c.ValidUntil, c.IsPublic, c.IsActive, now, now).Scan(&c.ID)
}

func (r *couponRepository) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "coupon %d not found", id)
	}
	return c, err
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindInvalidCoupon, "coupon %q not found", code)
	}
	return c, err
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	query := `UPDATE coupons SET code=$1, discount_type=$2, discount_value=$3, min_days=$4, max_days=$5, valid_from=$6, valid_until=$7, is_public=$8, is_active=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, c.Code, c.DiscountType, c.DiscountValue, c.MinDays, c.MaxDays, c.ValidFrom, c.ValidUntil, c.IsPublic, c.IsActive, time.Now(), c.ID)
	return err
}

func (r *couponRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	return err
}
