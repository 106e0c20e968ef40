package interpreter

import (
	"errors"

	"github.com/rodrigocam/rinha/pkg/driver"
	"github.com/rodrigocam/rinha/pkg/runtime"
)

// RuntimeDiagnostic converts an error returned by Run or Evaluate into a
// driver diagnostic. Faults keep their kind and location; other errors (a
// failed write to the output, say) are reported without either.
func RuntimeDiagnostic(err error) driver.Diagnostic {
	diag := driver.Diagnostic{
		Stage:    driver.StageRuntime,
		Severity: driver.SeverityError,
	}
	if err == nil {
		return diag
	}
	var fault *runtime.Fault
	if errors.As(err, &fault) {
		diag.Kind = string(fault.Kind)
		diag.Message = fault.Message
		diag.Location = fault.Location
		return diag
	}
	diag.Message = err.Error()
	return diag
}

// DescribeRuntimeError renders err the way the CLI prints it.
func DescribeRuntimeError(err error) string {
	return driver.DescribeDiagnostic(RuntimeDiagnostic(err))
}
