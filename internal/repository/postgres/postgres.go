package postgres

import (
	"database/sql"

	"github.com/Alceujrab/sisloc-sub000/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.VehicleGroupRepository
	repository.PriceRuleRepository
	repository.CouponRepository
	repository.ReservationRepository
	repository.ReviewRepository
	repository.PaymentRepository
	repository.RefundRepository
	repository.LoyaltyRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		VehicleRepository:      NewVehicleRepository(db),
		VehicleGroupRepository: NewVehicleGroupRepository(db),
		PriceRuleRepository:    NewPriceRuleRepository(db),
		CouponRepository:       NewCouponRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		RefundRepository:       NewRefundRepository(db),
		LoyaltyRepository:      NewLoyaltyRepository(db),
	}
}
