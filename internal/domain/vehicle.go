package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusInactive    VehicleStatus = "INACTIVE"
)

type Vehicle struct {
	ID                  int32         `json:"id"`
	GroupID             *int32        `json:"group_id,omitempty"`
	Plate               string        `json:"plate"`
	Model               string        `json:"model"`
	Location            string        `json:"location"`
	Status              VehicleStatus `json:"status"`
	DailyRateCents      int64         `json:"daily_rate_cents"`
	InsuranceDailyCents int64         `json:"insurance_daily_cents"`
	CreatedOn           time.Time     `json:"created_on"`
	UpdatedOn           time.Time     `json:"updated_on"`
}

// VehicleGroup clusters vehicles for pricing and rule scoping.
type VehicleGroup struct {
	ID       int32  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GroupMinimum is one row of the storefront "cheapest rate per group" view.
type GroupMinimum struct {
	GroupID      int32 `json:"group_id"`
	MinRateCents int64 `json:"min_rate_cents"`
}
