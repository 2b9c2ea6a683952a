package layout

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies a degraded-mode event.
type DiagnosticKind string

const (
	DiagCycle            DiagnosticKind = "cycle"
	DiagDepthExceeded    DiagnosticKind = "depth_exceeded"
	DiagAmbiguousParent  DiagnosticKind = "ambiguous_parent"
	DiagUnknownTarget    DiagnosticKind = "unknown_target"
	DiagSizeNotConverged DiagnosticKind = "size_not_converged"
)

// Diagnostic is an advisory record of something the resolver worked around.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" bson:"kind"`
	Frame   string         `json:"frame,omitempty" bson:"frame,omitempty"`
	Related []string       `json:"related,omitempty" bson:"related,omitempty"`
	Message string         `json:"message" bson:"message"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	if d.Frame != "" {
		fmt.Fprintf(&b, " [%s]", d.Frame)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

func (r *Resolver) report(d Diagnostic, keyvals ...any) {
	r.diags = append(r.diags, d)
	kv := append([]any{"kind", d.Kind}, keyvals...)
	if d.Frame != "" {
		kv = append(kv, "frame", d.Frame)
	}
	r.log.Warn(d.Message, kv...)
}

// Count returns how many diagnostics of kind are in ds.
func Count(ds []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
