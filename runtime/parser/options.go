package parser

import "time"

// ParserOpt configures a Parser at construction time.
type ParserOpt func(*ParserConfig)

// TelemetryMode controls telemetry collection (production-safe).
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // zero overhead (default)
	TelemetryBasic                       // parse counts only
	TelemetryTiming                      // counts + timing per phase
)

// ParserConfig holds parser configuration.
type ParserConfig struct {
	dialect   Dialect
	filename  string
	telemetry TelemetryMode
}

// WithDialect selects the surface syntax. The default is RazorForge.
func WithDialect(d Dialect) ParserOpt {
	return func(c *ParserConfig) {
		c.dialect = d
	}
}

// WithFilename sets the filename used in token positions and diagnostics.
func WithFilename(name string) ParserOpt {
	return func(c *ParserConfig) {
		c.filename = name
	}
}

// WithTelemetryBasic enables parse-count telemetry.
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables parse-count and timing telemetry.
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// ParseTelemetry holds parser performance metrics.
type ParseTelemetry struct {
	LexTime    time.Duration
	ParseTime  time.Duration
	TotalTime  time.Duration
	TokenCount int
	ErrorCount int
}
