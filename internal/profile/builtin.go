package profile

import "slices"

const (
	QuantityCurrent     = "current"
	QuantityTemperature = "temperature"
)

var (
	wideDayWeights   = []float64{8, 8, 15, 16, 16, 16, 8, 5, 3, 3, 2}
	narrowDayWeights = []float64{9, 9, 15, 16, 16, 16, 10, 7, 1, 1}
	nightWeights     = []float64{5, 9, 9, 16, 16, 16, 16, 8, 5}
)

// Current is the electrical current profile, in amperes. Zero means the
// equipment is powered off.
func Current() *Profile {
	return &Profile{
		Quantity:    QuantityCurrent,
		Column:      "Current (Ampere)",
		FilePrefix:  "Current",
		Idle:        0,
		IdleRepeats: []int{6, 7, 8, 9, 10, 11, 12},
		Night: ShiftConfig{
			Values:  []float64{0, 30, 33, 35, 38, 40, 43, 45, 48},
			Weights: slices.Clone(nightWeights),
		},
		Variants: variants([][]float64{
			{44, 45, 47, 49, 50, 51, 54, 58, 67, 70, 73},
			{44, 45, 46, 48, 50, 51, 54, 58, 67, 69, 71},
			{43, 44, 46, 48, 49, 51, 53, 57, 65, 68, 69},
			{43, 44, 45, 47, 49, 51, 53, 57, 64, 65},
			{42, 43, 45, 47, 48, 51, 53, 56, 64, 65},
			{42, 43, 44, 46, 48, 50, 52, 56, 64, 65},
			{41, 42, 44, 46, 47, 50, 52, 55, 64, 65},
			{41, 42, 43, 45, 47, 50, 52, 55, 64, 66},
			{40, 41, 43, 45, 46, 50, 51, 54, 62, 63},
			{40, 41, 42, 44, 46, 50, 51, 53, 60, 61},
		}),
	}
}

// Temperature is the equipment temperature profile, in degrees Celsius.
// 26 is ambient, i.e. the equipment is powered off.
func Temperature() *Profile {
	return &Profile{
		Quantity:    QuantityTemperature,
		Column:      "Temperature (Celsius)",
		FilePrefix:  "Temperature",
		Idle:        26,
		IdleRepeats: []int{6, 7, 8, 9, 10, 11, 12},
		Night: ShiftConfig{
			Values:  []float64{26, 31, 35, 37, 40, 45, 49, 51, 53},
			Weights: slices.Clone(nightWeights),
		},
		Variants: variants([][]float64{
			{44, 48, 51, 54, 57, 61, 65, 70, 79, 81, 84},
			{44, 48, 51, 53, 57, 60, 64, 69, 79, 80, 82},
			{43, 47, 49, 53, 57, 61, 65, 70, 78, 80, 82},
			{43, 47, 49, 52, 56, 60, 64, 69, 78, 79},
			{42, 46, 49, 53, 56, 60, 63, 67, 78, 79},
			{42, 46, 49, 51, 55, 59, 63, 68, 77, 78},
			{41, 45, 48, 51, 54, 58, 62, 67, 77, 78},
			{41, 45, 48, 52, 53, 57, 61, 67, 77, 78},
			{40, 44, 48, 51, 55, 59, 63, 68, 77, 78},
			{40, 44, 48, 51, 54, 58, 62, 67, 76, 77},
		}),
	}
}
