package literaleval

import (
	"context"
	"fmt"
	"math"

	"github.com/podhmo/literaleval/value"
)

// MismatchError reports that the two strategies disagree on src, or that
// the repr of the result does not evaluate back to an equal value.
type MismatchError struct {
	Src    string
	Reason string
	Err    error // underlying error, if any
}

func (e *MismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verify %q: %s: %v", e.Src, e.Reason, e.Err)
	}
	return fmt.Sprintf("verify %q: %s", e.Src, e.Reason)
}

func (e *MismatchError) Unwrap() error { return e.Err }

// Verify evaluates src with both strategies and checks that they agree.
// When both accept, the repr of the value must evaluate back to an equal
// value; the repr text itself may change, as -6j reads back as 0-6j.
// When both reject with the same message, that error is returned as is.
// Disagreements are reported as *MismatchError.
func (e *Evaluator) Verify(ctx context.Context, src string) (value.Value, error) {
	rec, stk := *e, *e
	rec.strategy = StrategyRecursive
	stk.strategy = StrategyStack

	rv, rerr := rec.Eval(ctx, src)
	sv, serr := stk.Eval(ctx, src)
	switch {
	case rerr != nil && serr != nil:
		if rerr.Error() != serr.Error() {
			return nil, &MismatchError{Src: src, Reason: fmt.Sprintf("errors differ: recursive %q, stack %q", rerr, serr)}
		}
		return nil, rerr
	case rerr != nil:
		return nil, &MismatchError{Src: src, Reason: "only the recursive strategy failed", Err: rerr}
	case serr != nil:
		return nil, &MismatchError{Src: src, Reason: "only the stack strategy failed", Err: serr}
	}

	if !value.Equal(rv, sv) || value.Repr(rv) != value.Repr(sv) {
		return nil, &MismatchError{Src: src, Reason: fmt.Sprintf("results differ: recursive %s, stack %s", value.Repr(rv), value.Repr(sv))}
	}
	if !finite(sv) {
		e.log().DebugContext(ctx, "skip repr round-trip for non-finite value", "src", src)
		return sv, nil
	}

	repr := value.Repr(sv)
	again, err := stk.Eval(ctx, repr)
	if err != nil {
		return nil, &MismatchError{Src: src, Reason: fmt.Sprintf("repr %s does not evaluate", repr), Err: err}
	}
	if !value.Equal(sv, again) {
		return nil, &MismatchError{Src: src, Reason: fmt.Sprintf("repr round-trip changed %s into %s", repr, value.Repr(again))}
	}
	return sv, nil
}

// finite reports whether v contains no inf or nan, which have no literal
// spelling.
func finite(v value.Value) bool {
	isFinite := func(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }
	switch v := v.(type) {
	case value.Float:
		return isFinite(float64(v))
	case value.Complex:
		return isFinite(real(v)) && isFinite(imag(v))
	case value.Tuple:
		return allFinite(v)
	case value.List:
		return allFinite(v)
	case *value.Set:
		return allFinite(v.Items())
	case *value.Dict:
		for _, entry := range v.Entries() {
			if !finite(entry.Key) || !finite(entry.Value) {
				return false
			}
		}
	}
	return true
}

func allFinite(items []value.Value) bool {
	for _, item := range items {
		if !finite(item) {
			return false
		}
	}
	return true
}
