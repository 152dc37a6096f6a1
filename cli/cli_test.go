package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/razorforge/core/diag"
	"github.com/razorforge-lang/razorforge/runtime/parser"
)

func TestResolveDialect(t *testing.T) {
	tests := []struct {
		flag    string
		path    string
		want    parser.Dialect
		wantErr bool
	}{
		{"auto", "main.rf", parser.DialectRazorForge, false},
		{"auto", "script.cake", parser.DialectCake, false},
		{"razorforge", "whatever.cake", parser.DialectRazorForge, false},
		{"cake", "main.rf", parser.DialectCake, false},
		{"klingon", "main.rf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.flag+"/"+tt.path, func(t *testing.T) {
			got, err := resolveDialect(tt.flag, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.rf")
	require.NoError(t, os.WriteFile(good, []byte("routine f() -> Int:\n    return 1\n"), 0o644))
	require.True(t, checkFile(good, "auto", false, false))

	bad := filepath.Join(dir, "bad.rf")
	require.NoError(t, os.WriteFile(bad, []byte("routine broken(:\n"), 0o644))
	require.False(t, checkFile(bad, "auto", false, false))

	missing := filepath.Join(dir, "missing.rf")
	require.False(t, checkFile(missing, "auto", false, false))
}

func TestColorize(t *testing.T) {
	require.Equal(t, "hi", Colorize("hi", ColorRed, false))
	require.Equal(t, ColorRed+"hi"+ColorReset, Colorize("hi", ColorRed, true))
	require.Equal(t, "hi", Colorize("hi", "", true))
}

func TestShouldUseColorRespectsNoColor(t *testing.T) {
	require.False(t, ShouldUseColor(true))

	t.Setenv("NO_COLOR", "1")
	require.False(t, ShouldUseColor(false))
}

func TestFormatDiagnostics(t *testing.T) {
	p := parser.New("routine broken(:\n", parser.WithFilename("bad.rf"))
	_, errs := p.ParseFile()
	require.NotEmpty(t, errs)

	var buf strings.Builder
	FormatError(&buf, "bad.rf", errs[0], false)
	require.Contains(t, buf.String(), "bad.rf")
	require.Contains(t, buf.String(), "error:")

	buf.Reset()
	FormatWarning(&buf, "bad.rf", diag.Warning{
		Message:  "unnecessary brace",
		Line:     3,
		Column:   1,
		Severity: diag.SeverityWarning,
		Code:     diag.WarnUnnecessaryBrace,
	}, false)
	require.Contains(t, buf.String(), "bad.rf:3:1")
	require.Contains(t, buf.String(), "RF-W001")
}
