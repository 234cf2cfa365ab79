package domain

import "time"

type AdjustmentType string

const (
	AdjustmentTypePercent AdjustmentType = "PERCENT"
	AdjustmentTypeAmount  AdjustmentType = "AMOUNT"
)

// PriceRule adjusts the daily rate of matching vehicles on matching dates.
// A nil/empty scope field means the rule does not filter on that dimension.
// AdjustmentValue is percent points for PERCENT rules and cents for AMOUNT
// rules.
type PriceRule struct {
	ID              int32          `json:"id"`
	Name            string         `json:"name"`
	GroupID         *int32         `json:"group_id,omitempty"`
	Location        string         `json:"location,omitempty"`
	StartDate       *time.Time     `json:"start_date,omitempty"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	Weekdays        []time.Weekday `json:"weekdays,omitempty"`
	AdjustmentType  AdjustmentType `json:"adjustment_type"`
	AdjustmentValue float64        `json:"adjustment_value"`
	Priority        int32          `json:"priority"`
	IsActive        bool           `json:"is_active"`
	CreatedOn       time.Time      `json:"created_on"`
	UpdatedOn       time.Time      `json:"updated_on"`
}

// AppliesTo reports whether the rule matches the given vehicle scope and date.
func (r *PriceRule) AppliesTo(groupID *int32, location string, date time.Time) bool {
	if r.GroupID != nil {
		if groupID == nil || *groupID != *r.GroupID {
			return false
		}
	}
	if r.Location != "" && r.Location != location {
		return false
	}
	if r.StartDate != nil && date.Before(*r.StartDate) {
		return false
	}
	if r.EndDate != nil && date.After(*r.EndDate) {
		return false
	}
	if len(r.Weekdays) > 0 {
		match := false
		for _, wd := range r.Weekdays {
			if wd == date.Weekday() {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}
