package geometry

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ConstructionError reports geometry that cannot be built, such as a
// zero-area triangle or a rect whose corners are not coplanar.
type ConstructionError struct {
	Kind    string
	Message string
	inner   error
	frame   xerrors.Frame
}

func NewConstructionError(kind, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		frame:   xerrors.Caller(1),
	}
}

// WrapConstructionError records that building kind failed because of inner.
func WrapConstructionError(inner error, kind, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		inner:   inner,
		frame:   xerrors.Caller(1),
	}
}

func (e *ConstructionError) Error() string {
	if e.inner != nil {
		return fmt.Sprintf("bad %s: %s: %v", e.Kind, e.Message, e.inner)
	}
	return fmt.Sprintf("bad %s: %s", e.Kind, e.Message)
}

func (e *ConstructionError) Unwrap() error {
	return e.inner
}

func (e *ConstructionError) Format(f fmt.State, c rune) {
	xerrors.FormatError(e, f, c)
}

func (e *ConstructionError) FormatError(p xerrors.Printer) error {
	p.Printf("bad %s: %s", e.Kind, e.Message)
	if p.Detail() {
		e.frame.Format(p)
	}
	return e.inner
}
