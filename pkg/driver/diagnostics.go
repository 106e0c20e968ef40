package driver

import (
	"fmt"
	"strings"

	"github.com/rodrigocam/rinha/pkg/ast"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticStage names the phase that produced a diagnostic.
type DiagnosticStage string

const (
	StageDocument DiagnosticStage = "document"
	StageRuntime  DiagnosticStage = "runtime"
	StageConfig   DiagnosticStage = "config"
)

// Diagnostic is a structured, user-facing error report.
type Diagnostic struct {
	Stage    DiagnosticStage
	Severity DiagnosticSeverity
	Kind     string
	Message  string
	Location ast.Location
}

// DescribeDiagnostic formats a diagnostic for CLI output, e.g.
// "runtime: fib.rinha:12-20 undefined variable 'x'".
func DescribeDiagnostic(diag Diagnostic) string {
	stage := string(diag.Stage)
	if stage == "" {
		stage = "error"
	}
	message := strings.TrimSpace(diag.Message)
	if strings.HasPrefix(message, stage+":") {
		message = strings.TrimSpace(strings.TrimPrefix(message, stage+":"))
	}
	prefix := stage + ": "
	if diag.Severity == SeverityWarning {
		prefix = "warning: " + prefix
	}
	if location := diag.Location.String(); location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return prefix + message
}
