package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BloodSugarType tags the measurement context
type BloodSugarType string

const (
	BloodSugarFasting  BloodSugarType = "fasting"
	BloodSugarRandom   BloodSugarType = "random"
	BloodSugarPostMeal BloodSugarType = "post_meal"
)

// Valid reports whether t belongs to the closed context set
func (t BloodSugarType) Valid() bool {
	switch t {
	case BloodSugarFasting, BloodSugarRandom, BloodSugarPostMeal:
		return true
	}
	return false
}

// Vitals is a timestamped measurement snapshot for a user
type Vitals struct {
	Base
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Date   time.Time `json:"date" db:"date"`

	Systolic  *int `json:"systolic,omitempty" db:"systolic"`
	Diastolic *int `json:"diastolic,omitempty" db:"diastolic"`

	BloodSugar     *float64        `json:"blood_sugar,omitempty" db:"blood_sugar"`
	BloodSugarType *BloodSugarType `json:"blood_sugar_type,omitempty" db:"blood_sugar_type"`

	Weight *float64 `json:"weight,omitempty" db:"weight"` // kg
	Height *float64 `json:"height,omitempty" db:"height"` // cm
	BMI    *float64 `json:"bmi,omitempty" db:"bmi"`

	HeartRate   *int     `json:"heart_rate,omitempty" db:"heart_rate"`
	Temperature *float64 `json:"temperature,omitempty" db:"temperature"`
	OxygenLevel *float64 `json:"oxygen_level,omitempty" db:"oxygen_level"`

	Notes    *string        `json:"notes,omitempty" db:"notes"`
	Symptoms pq.StringArray `json:"symptoms" db:"symptoms"`
}

// ComputeBMI recomputes BMI whenever both weight and height are set:
// weight_kg / (height_m)^2, rounded to one decimal.
func (v *Vitals) ComputeBMI() {
	if v.Weight == nil || v.Height == nil || *v.Height == 0 {
		return
	}
	heightM := *v.Height / 100
	bmi := math.Round(*v.Weight/(heightM*heightM)*10) / 10
	v.BMI = &bmi
}

// VitalsRequest is the create/update payload
type VitalsRequest struct {
	Date           *time.Time      `json:"date"`
	Systolic       *int            `json:"systolic"`
	Diastolic      *int            `json:"diastolic"`
	BloodSugar     *float64        `json:"blood_sugar"`
	BloodSugarType *BloodSugarType `json:"blood_sugar_type" binding:"omitempty,blood_sugar_type"`
	Weight         *float64        `json:"weight"`
	Height         *float64        `json:"height"`
	HeartRate      *int            `json:"heart_rate"`
	Temperature    *float64        `json:"temperature"`
	OxygenLevel    *float64        `json:"oxygen_level"`
	Notes          *string         `json:"notes"`
	Symptoms       []string        `json:"symptoms"`
}

// VitalsFilter narrows a vitals listing
type VitalsFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
}

// VitalsStats aggregates a trailing window of measurements
type VitalsStats struct {
	TotalRecords int              `json:"total_records"`
	Averages     VitalsAverages   `json:"averages"`
}

// VitalsAverages holds per-metric means; nil when no readings exist
type VitalsAverages struct {
	Systolic   *int     `json:"systolic,omitempty"`
	Diastolic  *int     `json:"diastolic,omitempty"`
	BloodSugar *float64 `json:"blood_sugar,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
}
