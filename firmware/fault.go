package firmware

import (
	"errors"
	"fmt"

	"github.com/monocap/monocap/drivers/status"
)

// Fault is a fatal error of a run, tagged with the blink code that reports
// it on the device.
type Fault struct {
	Code status.Code
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v: %v", f.Code, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

func fault(code status.Code, err error) error {
	return &Fault{Code: code, Err: err}
}

// FaultCode returns the blink code for err, or 0 if err is not a Fault.
func FaultCode(err error) status.Code {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return 0
}
