package segmentation

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"qmrelax/internal/models"
)

// CanonicalParameters lists the parameter names recognized by the
// extraction factory, in their fixed extraction order.
var CanonicalParameters = []string{"T1", "T2", "M0", "IP"}

// ErrKeyNotFound is returned by TissueROI.Item for names that match
// neither a parameter nor one of the special keys "mask", "name" and
// "volume".
var ErrKeyNotFound = fmt.Errorf("key not found")

// ParameterROI holds the values of a single imaging parameter at all
// voxels of one tissue mask, in mask iteration order.
type ParameterROI struct {
	// Name is the parameter identifier, typically one of T1, T2, M0, IP
	Name string

	// Values are the parameter values at all masked voxels
	Values []float64

	// Unit tags the values for display
	Unit Unit
}

// TissueROI is a named collection of parameter ROIs sharing one binary
// mask. The mask is exclusively owned by the TissueROI and never mutated
// after construction.
type TissueROI struct {
	// Name is the tissue identifier
	Name string

	// Mask marks the voxels belonging to this tissue
	Mask *models.Mask

	// Volume is the number of true voxels in the mask, computed once at
	// construction
	Volume int

	// Color is the display color for this tissue, empty if unresolved
	Color string

	parameters map[string]*ParameterROI
	order      []string
}

// NewTissueROI builds a tissue ROI from pre-extracted parameter ROIs.
// Parameters keep the given order for iteration. The volume is derived
// from the mask's true-count.
func NewTissueROI(name string, parameters []*ParameterROI, mask *models.Mask, color string) *TissueROI {
	tissue := &TissueROI{
		Name:       name,
		Mask:       mask,
		Volume:     mask.Count(),
		Color:      color,
		parameters: make(map[string]*ParameterROI, len(parameters)),
	}
	for _, parameter := range parameters {
		if _, exists := tissue.parameters[parameter.Name]; !exists {
			tissue.order = append(tissue.order, parameter.Name)
		}
		tissue.parameters[parameter.Name] = parameter
	}
	return tissue
}

// ExtractTissueROI builds a tissue ROI by applying the mask to each of
// the canonical parameter maps, in the fixed order T1, T2, M0, IP.
//
// Extraction is best-effort: a parameter whose map is absent (or a nil
// maps mapping) is skipped entirely. A present map whose shape disagrees
// with the mask is a hard error. T1 and T2 carry the supplied unit; M0
// and IP always carry UnitNone.
//
// The color is resolved from the canonical tissue-color table
// (case-insensitive) unless an explicit override is supplied. An
// unresolved color emits a non-fatal warning and leaves Color empty.
func ExtractTissueROI(name string, maps map[string]*models.Volume, mask *models.Mask, unit Unit, color string) (*TissueROI, error) {
	var parameters []*ParameterROI
	for _, parameterName := range CanonicalParameters {
		if maps == nil {
			continue
		}
		volume, present := maps[parameterName]
		if !present || volume == nil {
			continue
		}
		values, err := volume.Masked(mask)
		if err != nil {
			return nil, fmt.Errorf("extracting %s for tissue %q: %w", parameterName, name, err)
		}
		parameterUnit := unit
		if parameterName == "M0" || parameterName == "IP" {
			parameterUnit = UnitNone
		}
		parameters = append(parameters, &ParameterROI{
			Name:   parameterName,
			Values: values,
			Unit:   parameterUnit,
		})
	}

	if color == "" {
		canonical, ok := CanonicalColor(name)
		if !ok {
			log.Warn().Str("tissue", name).Msg("no canonical color mapping for tissue")
		}
		color = canonical
	}

	return NewTissueROI(name, parameters, mask, color), nil
}

// Parameter returns the parameter ROI with the given name, or an
// ErrKeyNotFound error if the tissue has no such parameter.
func (t *TissueROI) Parameter(name string) (*ParameterROI, error) {
	parameter, ok := t.parameters[name]
	if !ok {
		return nil, fmt.Errorf("%w: tissue %q has no parameter %q", ErrKeyNotFound, t.Name, name)
	}
	return parameter, nil
}

// Parameters returns the tissue's parameter ROIs in insertion order
// (canonical order T1, T2, M0, IP minus any missing ones).
func (t *TissueROI) Parameters() []*ParameterROI {
	parameters := make([]*ParameterROI, 0, len(t.order))
	for _, name := range t.order {
		parameters = append(parameters, t.parameters[name])
	}
	return parameters
}

// ItemKind discriminates the result of a merged Item lookup.
type ItemKind int

const (
	// ItemParameter tags a parameter ROI result
	ItemParameter ItemKind = iota
	// ItemMask tags the tissue mask result
	ItemMask
	// ItemName tags the tissue name result
	ItemName
	// ItemVolume tags the mask-volume result
	ItemVolume
)

// Item is the tagged result of a merged lookup on a TissueROI. Exactly
// the field selected by Kind is meaningful.
type Item struct {
	Kind      ItemKind
	Parameter *ParameterROI
	Mask      *models.Mask
	Name      string
	Volume    int
}

// Item performs a merged lookup over the tissue's parameters and the
// special keys "mask", "name" and "volume". Parameter names take
// precedence over the special keys. Any other name fails with an
// ErrKeyNotFound error.
func (t *TissueROI) Item(name string) (Item, error) {
	if parameter, ok := t.parameters[name]; ok {
		return Item{Kind: ItemParameter, Parameter: parameter}, nil
	}
	switch name {
	case "mask":
		return Item{Kind: ItemMask, Mask: t.Mask}, nil
	case "name":
		return Item{Kind: ItemName, Name: t.Name}, nil
	case "volume":
		return Item{Kind: ItemVolume, Volume: t.Volume}, nil
	}
	return Item{}, fmt.Errorf("%w: %q in tissue %q", ErrKeyNotFound, name, t.Name)
}
