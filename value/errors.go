package value

import "fmt"

// UnhashableError is returned when a mutable container is used as a set
// element or dict key.
type UnhashableError struct {
	Kind Kind
}

func (e *UnhashableError) Error() string {
	return fmt.Sprintf("unhashable type: '%s'", e.Kind)
}

// OverflowError reports a numeric conversion that does not fit the target type.
type OverflowError struct {
	Msg string
}

func (e *OverflowError) Error() string {
	return e.Msg
}
