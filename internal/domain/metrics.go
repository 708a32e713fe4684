package domain

import "math"

const (
	calorieAdjustment = 500.0
	kcalPerGramProt   = 4.0
	kcalPerGramCarb   = 4.0
	kcalPerGramFat    = 9.0
	fatShare          = 0.25
)

// Macros is a daily calorie target and its macronutrient split in grams.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	BMR      int `json:"bmr,omitempty"`
	TDEE     int `json:"tdee,omitempty"`
}

// BMR returns the Harris-Benedict basal metabolic rate in kcal/day.
// Only SexFemale selects the female formula.
func BMR(sex Sex, weightKg, heightCm float64, age int) float64 {
	if sex == SexFemale {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
}

// TDEE scales a BMR by an activity multiplier.
func TDEE(bmr, activity float64) float64 {
	return bmr * activity
}

// CalorieTarget adjusts a TDEE for the goal. Unknown goals maintain.
func CalorieTarget(tdee float64, goal Goal) float64 {
	switch goal {
	case GoalBulk:
		return tdee + calorieAdjustment
	case GoalCut:
		return tdee - calorieAdjustment
	default:
		return tdee
	}
}

// MacroSplit splits a calorie target into protein, fat and carbohydrate grams.
// Carbs may come out negative for implausible inputs.
func MacroSplit(calories, weightKg float64, goal Goal) Macros {
	perKg := 1.6
	if goal == GoalBulk {
		perKg = 2
	}
	protein := Round(weightKg * perKg)
	proteinKcal := protein * kcalPerGramProt
	fatKcal := calories * fatShare
	carbKcal := calories - proteinKcal - fatKcal

	return Macros{
		Calories: int(Round(calories)),
		Protein:  int(protein),
		Fat:      int(Round(fatKcal / kcalPerGramFat)),
		Carbs:    int(Round(carbKcal / kcalPerGramCarb)),
	}
}

// MacrosFor computes the full daily targets for a profile.
func MacrosFor(p Profile) Macros {
	bmr := BMR(p.Sex, p.Weight, p.Height, p.Age)
	tdee := TDEE(bmr, p.Activity)
	target := Round(CalorieTarget(tdee, p.Goal))

	m := MacroSplit(target, p.Weight, p.Goal)
	m.BMR = int(Round(bmr))
	m.TDEE = int(Round(tdee))
	return m
}

// ProgressPercent returns current/target as a whole percentage capped at 100.
func ProgressPercent(current, target float64) int {
	if target == 0 {
		return 0
	}
	return int(math.Min(Round(current/target*100), 100))
}

// Round rounds half up, towards positive infinity.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
