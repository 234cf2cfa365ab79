package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		Code:           "RES-AAAA1111",
		UserID:         1,
		VehicleID:      7,
		StartDate:      time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC),
		DaysCount:      3,
		DailyRateCents: 10000,
		InsuranceDaily: 2000,
		Subtotal:       32000,
		InsuranceTotal: 6000,
		TotalAmount:    38000,
		PaymentState:   domain.PaymentStatePending,
		Status:         domain.ReservationStatusPending,
		PreauthStatus:  domain.PreauthStatusNone,
	}
}

func TestReservationRepository_Create(t *testing.T) {
	guardStart := time.Date(2026, time.June, 4, 22, 0, 0, 0, time.UTC)
	guardEnd := time.Date(2026, time.June, 8, 2, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReservationRepository(db)
		rsv := testReservation()

		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM vehicles WHERE id = \\$1 FOR UPDATE").
			WithArgs(rsv.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(rsv.VehicleID, int32(0), guardEnd, guardStart).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO reservations").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectCommit()

		err = repo.Create(ctx, rsv, guardStart, guardEnd)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), rsv.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict Found By Recheck", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReservationRepository(db)
		rsv := testReservation()

		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM vehicles WHERE id = \\$1 FOR UPDATE").
			WithArgs(rsv.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(rsv.VehicleID, int32(0), guardEnd, guardStart).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err = repo.Create(ctx, rsv, guardStart, guardEnd)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindVehicleUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Code", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReservationRepository(db)
		rsv := testReservation()

		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM vehicles WHERE id = \\$1 FOR UPDATE").
			WithArgs(rsv.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(rsv.VehicleID, int32(0), guardEnd, guardStart).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO reservations").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "reservations_reservation_code_key"})
		mock.ExpectRollback()

		err = repo.Create(ctx, rsv, guardStart, guardEnd)
		assert.ErrorIs(t, err, repository.ErrDuplicateCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReservationRepository_UpdateWithConflictGuard(t *testing.T) {
	ctx := context.Background()
	guardStart := time.Date(2026, time.June, 7, 22, 0, 0, 0, time.UTC)
	guardEnd := time.Date(2026, time.June, 10, 2, 0, 0, 0, time.UTC)

	t.Run("Window Conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReservationRepository(db)
		rsv := testReservation()
		rsv.ID = 11

		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM vehicles WHERE id = \\$1 FOR UPDATE").
			WithArgs(rsv.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(rsv.VehicleID, rsv.ID, guardEnd, guardStart).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err = repo.UpdateWithConflictGuard(ctx, rsv, guardStart, guardEnd)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindVehicleUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReservationRepository(db)
		rsv := testReservation()
		rsv.ID = 11

		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM vehicles WHERE id = \\$1 FOR UPDATE").
			WithArgs(rsv.VehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
			WithArgs(rsv.VehicleID, rsv.ID, guardEnd, guardStart).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("UPDATE reservations SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.UpdateWithConflictGuard(ctx, rsv, guardStart, guardEnd)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReservationRepository_ListConflicting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := NewReservationRepository(db)
	ctx := context.Background()

	start := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, start_date, end_date FROM reservations").
		WithArgs(int32(7), end, start).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date"}).
			AddRow(9, start.AddDate(0, 0, 1), end.AddDate(0, 0, 2)))

	windows, err := repo.ListConflicting(ctx, 7, start, end)
	assert.NoError(t, err)
	assert.Len(t, windows, 1)
	assert.Equal(t, int32(9), windows[0].ReservationID)
	assert.True(t, windows[0].Overlaps(start, end))
}
