package engine

import (
	"fmt"
	"strings"
)

// OutOfRangeError reports a measurement outside the supported bounds.
// It is never clamped away: the caller is expected to prompt the user.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g is out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// InvalidCategoryError reports an unrecognized enumerated value.
type InvalidCategoryError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid %s %q, must be one of: %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// InvalidResultError reports a computed value that is not physically
// possible (e.g. non-positive BMR). It means a bad input combination
// slipped past validation and must propagate.
type InvalidResultError struct {
	What  string
	Value float64
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("computed %s is invalid: %g (must be positive)", e.What, e.Value)
}

// UnsafeCalorieError blocks a plan whose calorie target falls below the
// safety floor. No partial plan is returned alongside it.
type UnsafeCalorieError struct {
	Calories float64
	Floor    float64
}

func (e *UnsafeCalorieError) Error() string {
	return fmt.Sprintf("calorie target %.0f is below the safe minimum of %.0f", e.Calories, e.Floor)
}
