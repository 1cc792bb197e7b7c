package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by Calculate and NormalizeToKg.
const (
	ErrInvalidUnit         = constError("invalid carbon unit")
	ErrNegativeValue       = constError("negative carbon value")
	ErrCalculationOverflow = constError("calculation overflow")
)
