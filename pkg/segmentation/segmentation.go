package segmentation

import (
	"fmt"
	"sort"

	"qmrelax/internal/models"
)

// SortMode controls the tissue ordering of a segmentation.
type SortMode string

const (
	// SortNone leaves the tissues in their given order
	SortNone SortMode = "none"
	// SortIncreasing orders tissues by increasing mask volume
	SortIncreasing SortMode = "increasing"
	// SortDecreasing orders tissues by decreasing mask volume (default)
	SortDecreasing SortMode = "decreasing"
)

// ParseSortMode converts a string into a SortMode. The empty string
// selects the default, decreasing.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortNone, SortIncreasing, SortDecreasing:
		return SortMode(s), nil
	case "":
		return SortDecreasing, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// ErrTissueNotFound is returned by Segmentation.ByName when no tissue
// matches the requested name.
var ErrTissueNotFound = fmt.Errorf("tissue not found")

// Segmentation is an ordered collection of tissue ROIs.
type Segmentation struct {
	tissues []*TissueROI
	mode    SortMode
}

// NewSegmentation collects pre-built tissue ROIs into a segmentation and
// applies the sort rule once. SortNone keeps the input order; the other
// modes apply a stable sort by mask volume, reversed for SortDecreasing.
func NewSegmentation(tissues []*TissueROI, mode SortMode) *Segmentation {
	ordered := make([]*TissueROI, len(tissues))
	copy(ordered, tissues)

	if mode != SortNone {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Volume < ordered[j].Volume
		})
		if mode == SortDecreasing {
			for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	return &Segmentation{tissues: ordered, mode: mode}
}

// LabeledMask pairs a tissue name with its mask. Masks are passed as an
// ordered slice rather than a map so that the pre-sort tissue order is
// deterministic and duplicate names remain distinct entries. A non-empty
// Color overrides the canonical tissue-color lookup.
type LabeledMask struct {
	Name  string
	Mask  *models.Mask
	Color string
}

// ExtractSegmentation builds one tissue ROI per labeled mask, reusing
// the same parameter maps for every tissue, then applies the sort rule.
func ExtractSegmentation(params map[string]*models.Volume, masks []LabeledMask, unit Unit, mode SortMode) (*Segmentation, error) {
	tissues := make([]*TissueROI, 0, len(masks))
	for _, labeled := range masks {
		tissue, err := ExtractTissueROI(labeled.Name, params, labeled.Mask, unit, labeled.Color)
		if err != nil {
			return nil, err
		}
		tissues = append(tissues, tissue)
	}
	return NewSegmentation(tissues, mode), nil
}

// Len returns the number of tissues in the segmentation.
func (s *Segmentation) Len() int {
	return len(s.tissues)
}

// SortMode returns the sort rule the segmentation was built with.
func (s *Segmentation) SortMode() SortMode {
	return s.mode
}

// Tissues returns the tissues in their current (post-sort) order.
func (s *Segmentation) Tissues() []*TissueROI {
	tissues := make([]*TissueROI, len(s.tissues))
	copy(tissues, s.tissues)
	return tissues
}

// ByIndex returns the tissue at the given position in post-sort order.
func (s *Segmentation) ByIndex(index int) (*TissueROI, error) {
	if index < 0 || index >= len(s.tissues) {
		return nil, fmt.Errorf("tissue index %d out of range [0, %d)", index, len(s.tissues))
	}
	return s.tissues[index], nil
}

// ByName returns the first tissue in post-sort order whose name equals
// the given string, or an ErrTissueNotFound error if none matches.
func (s *Segmentation) ByName(name string) (*TissueROI, error) {
	for _, tissue := range s.tissues {
		if tissue.Name == name {
			return tissue, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTissueNotFound, name)
}
