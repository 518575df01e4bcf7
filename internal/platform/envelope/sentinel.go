package envelope

import (
	"fmt"
	"regexp"
	"strings"
)

// sentinelPattern matches a taxonomy code, optionally followed by ":details".
// Codes are one uppercase letter (subsystem) plus four digits.
var sentinelPattern = regexp.MustCompile(`^([A-Z][0-9]{4})(?::(.*))?$`)

// Sentinel is a taxonomy-coded error raised by pipeline stages and business
// handlers. It is the tagged form of the legacy "CODE:details" string
// convention: internal code produces Sentinel values directly, and the string
// form is parsed only at the boundary where external handlers still return
// plain errors.
type Sentinel struct {
	// Code is the taxonomy code, e.g. "A0003".
	Code string
	// Details is optional free-text diagnostic detail.
	Details string
	// Ext carries domain-specific extension fields surfaced on the error
	// envelope (e.g. the duplicate field name and value).
	Ext map[string]any
}

// NewSentinel creates a sentinel error for a taxonomy code.
func NewSentinel(code string) *Sentinel {
	return &Sentinel{Code: code}
}

// NewSentinelf creates a sentinel error with formatted details.
func NewSentinelf(code, format string, args ...any) *Sentinel {
	return &Sentinel{Code: code, Details: fmt.Sprintf(format, args...)}
}

// WithDetail sets the free-text detail and returns the sentinel for chaining.
func (s *Sentinel) WithDetail(details string) *Sentinel {
	s.Details = details
	return s
}

// WithExt adds an extension field and returns the sentinel for chaining.
func (s *Sentinel) WithExt(key string, value any) *Sentinel {
	if s.Ext == nil {
		s.Ext = make(map[string]any)
	}
	s.Ext[key] = value
	return s
}

// Error renders the legacy wire form: "CODE" or "CODE:details".
func (s *Sentinel) Error() string {
	if s.Details == "" {
		return s.Code
	}
	return s.Code + ":" + s.Details
}

// ParseSentinel splits a legacy "CODE[:details]" message into its parts.
// ok is false when the message does not carry a taxonomy code.
func ParseSentinel(msg string) (code, details string, ok bool) {
	m := sentinelPattern.FindStringSubmatch(msg)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}
