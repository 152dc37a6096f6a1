package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/razorforge/core/diag"
)

func TestSeverityZeroValueIsWarning(t *testing.T) {
	var w diag.Warning
	require.Equal(t, diag.SeverityWarning, w.Severity)
	require.Equal(t, "warning", w.Severity.String())
}

func TestSinkKeepsInfoSeverity(t *testing.T) {
	var s diag.Sink
	s.Warn(diag.Warning{Message: "note", Severity: diag.SeverityInfo})

	require.Equal(t, 1, s.Len())
	require.Equal(t, diag.SeverityInfo, s.Warnings()[0].Severity)
	require.Equal(t, "info", s.Warnings()[0].Severity.String())
}

func TestSuggestClosestCandidate(t *testing.T) {
	require.Equal(t, "routine", diag.Suggest("routin", []string{"entity", "routine", "record"}))
	require.Empty(t, diag.Suggest("", []string{"routine"}))
	require.Empty(t, diag.Suggest("xyzzy", nil))
}
