// Package segmentation provides the data model for per-tissue regions of
// interest extracted from quantitative MRI parameter maps (T1, T2, M0 and
// inner-product maps) and tissue segmentation masks.
package segmentation

import (
	"fmt"
)

// Unit tags the values of a parameter ROI for display purposes. It never
// influences numeric computation.
type Unit string

const (
	UnitSeconds      Unit = "seconds"
	UnitMilliseconds Unit = "milliseconds"
	UnitNone         Unit = "none"
)

// ErrUnknownUnit is returned when a unit string is not part of the closed
// set of recognized units.
var ErrUnknownUnit = fmt.Errorf("unknown unit")

// ParseUnit converts a string into a Unit. Only the closed set
// "seconds", "milliseconds" and "none" is accepted.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitSeconds, UnitMilliseconds, UnitNone:
		return Unit(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Symbol returns the display suffix for the unit ("s", "ms" or the empty
// string), as used in axis labels by external plotting code.
func (u Unit) Symbol() string {
	switch u {
	case UnitSeconds:
		return "s"
	case UnitMilliseconds:
		return "ms"
	}
	return ""
}
