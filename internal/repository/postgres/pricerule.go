package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type priceRuleRepository struct {
	db *sql.DB
}

func NewPriceRuleRepository(db *sql.DB) repository.PriceRuleRepository {
	return &priceRuleRepository{db: db}
}

func weekdaysToInts(wds []time.Weekday) []int64 {
	out := make([]int64, 0, len(wds))
	for _, wd := range wds {
		out = append(out, int64(wd))
	}
	return out
}

func intsToWeekdays(ints []int64) []time.Weekday {
	if len(ints) == 0 {
		return nil
	}
	out := make([]time.Weekday, 0, len(ints))
	for _, i := range ints {
		out = append(out, time.Weekday(i))
	}
	return out
}

func (r *priceRuleRepository) Create(ctx context.Context, rule *domain.PriceRule) error {
	query := `INSERT INTO price_rules (name, group_id, location, start_date, end_date, weekdays, adjustment_type, adjustment_value, priority, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rule.Name, rule.GroupID, rule.Location, rule.StartDate, rule.EndDate,
		pq.Array(weekdaysToInts(rule.Weekdays)), rule.AdjustmentType, rule.AdjustmentValue, rule.Priority, rule.IsActive, now, now).Scan(&rule.ID)
}

func (r *priceRuleRepository) GetByID(ctx context.Context, id int32) (*domain.PriceRule, error) {
	rule := &domain.PriceRule{}
	var weekdays []int64
	query := `SELECT id, name, group_id, COALESCE(location, ''), start_date, end_date, weekdays, adjustment_type, adjustment_value, priority, is_active, created_on, updated_on
	          FROM price_rules WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rule.ID, &rule.Name, &rule.GroupID, &rule.Location, &rule.StartDate, &rule.EndDate,
		pq.Array(&weekdays), &rule.AdjustmentType, &rule.AdjustmentValue, &rule.Priority, &rule.IsActive, &rule.CreatedOn, &rule.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "price rule %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	rule.Weekdays = intsToWeekdays(weekdays)
	return rule, nil
}

func (r *priceRuleRepository) Update(ctx context.Context, rule *domain.PriceRule) error {
	query := `UPDATE price_rules SET name=$1, group_id=$2, location=$3, start_date=$4, end_date=$5, weekdays=$6, adjustment_type=$7, adjustment_value=$8, priority=$9, is_active=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, rule.Name, rule.GroupID, rule.Location, rule.StartDate, rule.EndDate,
		pq.Array(weekdaysToInts(rule.Weekdays)), rule.AdjustmentType, rule.AdjustmentValue, rule.Priority, rule.IsActive, time.Now(), rule.ID)
	return err
}

func (r *priceRuleRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM price_rules WHERE id=$1`, id)
	return err
}

func (r *priceRuleRepository) ListActive(ctx context.Context) ([]domain.PriceRule, error) {
	query := `SELECT id, name, group_id, COALESCE(location, ''), start_date, end_date, weekdays, adjustment_type, adjustment_value, priority, is_active, created_on, updated_on
	          FROM price_rules WHERE is_active = TRUE ORDER BY priority DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.PriceRule
	for rows.Next() {
		var rule domain.PriceRule
		var weekdays []int64
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.GroupID, &rule.Location, &rule.StartDate, &rule.EndDate,
			pq.Array(&weekdays), &rule.AdjustmentType, &rule.AdjustmentValue, &rule.Priority, &rule.IsActive, &rule.CreatedOn, &rule.UpdatedOn); err != nil {
			return nil, err
		}
		rule.Weekdays = intsToWeekdays(weekdays)
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
