package swr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VSWR is a voltage standing wave ratio. Valid values are >= 1; Infinite marks
// a fully reflecting load.
type VSWR float64

// Infinite is the open/short-circuit sentinel. Its reflection magnitude is 1.
var Infinite = VSWR(math.Inf(1))

// IsInfinite reports whether v is the Infinite sentinel.
func (v VSWR) IsInfinite() bool { return math.IsInf(float64(v), 1) }

// String formats v the way panel titles show it.
func (v VSWR) String() string {
	if v.IsInfinite() {
		return "∞"
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// MarshalText encodes Infinite as "inf" so it survives JSON, TOML and YAML.
func (v VSWR) MarshalText() ([]byte, error) {
	if v.IsInfinite() {
		return []byte("inf"), nil
	}
	return []byte(strconv.FormatFloat(float64(v), 'g', -1, 64)), nil
}

// UnmarshalText accepts the forms understood by ParseVSWR.
func (v *VSWR) UnmarshalText(text []byte) error {
	parsed, err := ParseVSWR(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVSWR parses a decimal ratio or one of "inf", "infinite", "∞".
// Range checking is left to Gamma.
func ParseVSWR(s string) (VSWR, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "inf", "+inf", "infinite", "infinity", "∞":
		return Infinite, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: vswr %q is not a number", ErrInvalidParameter, s)
	}
	return VSWR(f), nil
}

// Gamma converts v into the reflection coefficient magnitude in [0, 1].
func Gamma(v VSWR) (float64, error) {
	if v.IsInfinite() {
		return 1, nil
	}
	f := float64(v)
	if math.IsNaN(f) || f < 1 {
		return 0, fmt.Errorf("%w: vswr %v is below 1", ErrInvalidParameter, f)
	}
	return (f - 1) / (f + 1), nil
}
