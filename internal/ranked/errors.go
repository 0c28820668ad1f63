package ranked

import "fmt"

// MaxValidRP is the sanity ceiling callers enforce before handing RP to
// the engine. The engine itself only clamps negatives.
const MaxValidRP = 10000

// ValidationError marks input the engine refuses to interpret. The
// reference tables are static and exhaustive, so an unmatched lookup is
// a caller bug rather than a recoverable condition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateTotalRP rejects RP values above MaxValidRP. Negative values
// are not an error here; CalculateRank clamps them to zero.
func ValidateTotalRP(totalRP int) error {
	if totalRP > MaxValidRP {
		return &ValidationError{
			Field:  "totalRP",
			Reason: fmt.Sprintf("%d exceeds the %d ceiling", totalRP, MaxValidRP),
		}
	}
	return nil
}
