package domain

import (
	"errors"
	"time"
)

// Category names a ledger sequence.
type Category string

const (
	CategoryWeight       Category = "weight"
	CategoryMeasurements Category = "measurements"
	CategoryWorkout      Category = "workout"
	CategoryNutrition    Category = "nutrition"
)

// WeightEntry is a single body weight measurement in kg.
type WeightEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Note      string    `json:"note,omitempty"`
}

// MeasurementEntry is a single circumference measurement in cm.
type MeasurementEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Measurements holds the three circumference sequences.
type Measurements struct {
	Arm   []MeasurementEntry `json:"arm"`
	Chest []MeasurementEntry `json:"chest"`
	Thigh []MeasurementEntry `json:"thigh"`
}

// WorkoutEntry is a logged training session. Duration is in minutes.
type WorkoutEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Duration  float64   `json:"duration"`
	Calories  float64   `json:"calories"`
}

// NutritionEntry is a logged meal or daily intake.
type NutritionEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
}

// Ledger is a user's append-only progress log.
type Ledger struct {
	Weight       []WeightEntry    `json:"weight"`
	Measurements Measurements     `json:"measurements"`
	Workouts     []WorkoutEntry   `json:"workouts"`
	Nutrition    []NutritionEntry `json:"nutrition"`
}

// ProgressInput is a payload that can be appended to a Ledger.
type ProgressInput interface {
	Category() Category
	Validate() error
	AppendTo(l *Ledger, at time.Time)
}

var (
	_ ProgressInput = WeightInput{}
	_ ProgressInput = MeasurementInput{}
	_ ProgressInput = WorkoutInput{}
	_ ProgressInput = NutritionInput{}
)

// WeightInput appends a weight entry.
type WeightInput struct {
	Value float64 `json:"value"`
	Note  string  `json:"note"`
}

func (WeightInput) Category() Category { return CategoryWeight }

func (in WeightInput) Validate() error {
	if in.Value <= 0 {
		return errors.New("weight must be > 0")
	}
	return nil
}

func (in WeightInput) AppendTo(l *Ledger, at time.Time) {
	l.Weight = append(l.Weight, WeightEntry{Timestamp: at, Value: in.Value, Note: in.Note})
}

// MeasurementInput appends to each circumference sequence that is present.
// Nil and zero values are treated as absent.
type MeasurementInput struct {
	Arm   *float64 `json:"arm,omitempty"`
	Chest *float64 `json:"chest,omitempty"`
	Thigh *float64 `json:"thigh,omitempty"`
}

func (MeasurementInput) Category() Category { return CategoryMeasurements }

func (in MeasurementInput) Validate() error {
	for _, v := range []*float64{in.Arm, in.Chest, in.Thigh} {
		if v != nil && *v < 0 {
			return errors.New("measurements must be >= 0")
		}
	}
	return nil
}

func (in MeasurementInput) AppendTo(l *Ledger, at time.Time) {
	if present(in.Arm) {
		l.Measurements.Arm = append(l.Measurements.Arm, MeasurementEntry{Timestamp: at, Value: *in.Arm})
	}
	if present(in.Chest) {
		l.Measurements.Chest = append(l.Measurements.Chest, MeasurementEntry{Timestamp: at, Value: *in.Chest})
	}
	if present(in.Thigh) {
		l.Measurements.Thigh = append(l.Measurements.Thigh, MeasurementEntry{Timestamp: at, Value: *in.Thigh})
	}
}

func present(v *float64) bool {
	return v != nil && *v != 0
}

// WorkoutInput appends a workout entry.
type WorkoutInput struct {
	Type     string  `json:"type"`
	Duration float64 `json:"duration"`
	Calories float64 `json:"calories"`
}

func (WorkoutInput) Category() Category { return CategoryWorkout }

func (in WorkoutInput) Validate() error {
	if in.Duration < 0 || in.Calories < 0 {
		return errors.New("duration and calories must be >= 0")
	}
	return nil
}

func (in WorkoutInput) AppendTo(l *Ledger, at time.Time) {
	l.Workouts = append(l.Workouts, WorkoutEntry{
		Timestamp: at,
		Type:      in.Type,
		Duration:  in.Duration,
		Calories:  in.Calories,
	})
}

// NutritionInput appends a nutrition entry.
type NutritionInput struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (NutritionInput) Category() Category { return CategoryNutrition }

func (in NutritionInput) Validate() error {
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 {
		return errors.New("nutrition values must be >= 0")
	}
	return nil
}

func (in NutritionInput) AppendTo(l *Ledger, at time.Time) {
	l.Nutrition = append(l.Nutrition, NutritionEntry{
		Timestamp: at,
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
	})
}
