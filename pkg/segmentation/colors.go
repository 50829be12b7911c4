package segmentation

import (
	"strings"
)

// canonicalColors maps lowercase tissue names to their canonical display
// color. The palette follows the overlay color sequence used for label
// display, extended with fixed colors for the surrounding anatomy.
var canonicalColors = map[string]string{
	"cochlea":             "#03fc20",
	"vestibulum":          "#fc0303",
	"semicircular canals": "#0307fc",
	"auditory nerve":      "#f003fc",
	"csf":                 "#03c2fc",
	"bone":                "#e8e4d8",
	"fat":                 "#fcf803",
	"muscle":              "#b5651d",
	"white matter":        "#d9d9d9",
	"gray matter":         "#808080",
}

// CanonicalColor looks up the canonical display color for a tissue name.
// The match is case-insensitive. The second return value reports whether
// a canonical mapping exists.
func CanonicalColor(tissueName string) (string, bool) {
	color, ok := canonicalColors[strings.ToLower(tissueName)]
	return color, ok
}
