package models

import (
	"fmt"
)

// Volume represents a full-volume quantitative parameter map (e.g. a T1
// relaxation time map) as a 1D array in row-major order.
type Volume struct {
	// Data is the voxel data as a 1D array in row-major order
	Data []float64

	// Width is the width of the volume in voxels
	Width int

	// Height is the height of the volume in voxels
	Height int

	// Depth is the depth of the volume in voxels
	Depth int
}

// NewVolume allocates a zero-filled volume with the given dimensions.
func NewVolume(width, height, depth int) *Volume {
	return &Volume{
		Data:   make([]float64, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
}

// Len returns the number of voxels in the volume.
func (v *Volume) Len() int {
	return len(v.Data)
}

// At returns the value at the given voxel coordinates.
func (v *Volume) At(x, y, z int) float64 {
	return v.Data[z*v.Width*v.Height+y*v.Width+x]
}

// Set stores a value at the given voxel coordinates.
func (v *Volume) Set(x, y, z int, value float64) {
	v.Data[z*v.Width*v.Height+y*v.Width+x] = value
}

// SameShape reports whether the volume and the mask cover the same voxel grid.
func (v *Volume) SameShape(m *Mask) bool {
	return v.Width == m.Width && v.Height == m.Height && v.Depth == m.Depth
}

// Masked extracts the values at all true mask entries, in the volume's
// natural row-major iteration order. The result has exactly as many
// entries as the mask has true voxels.
func (v *Volume) Masked(m *Mask) ([]float64, error) {
	if !v.SameShape(m) {
		return nil, fmt.Errorf("shape mismatch: volume %dx%dx%d vs mask %dx%dx%d",
			v.Width, v.Height, v.Depth, m.Width, m.Height, m.Depth)
	}
	values := make([]float64, 0, m.Count())
	for i, inside := range m.Data {
		if inside {
			values = append(values, v.Data[i])
		}
	}
	return values, nil
}

// Mask marks which voxels of a volume belong to a given tissue.
type Mask struct {
	// Data is the per-voxel membership as a 1D array in row-major order
	Data []bool

	// Width, Height, Depth are the mask dimensions in voxels
	Width, Height, Depth int
}

// NewMask allocates an all-false mask with the given dimensions.
func NewMask(width, height, depth int) *Mask {
	return &Mask{
		Data:   make([]bool, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
}

// Count returns the number of true voxels in the mask.
func (m *Mask) Count() int {
	count := 0
	for _, inside := range m.Data {
		if inside {
			count++
		}
	}
	return count
}

// At returns the mask membership at the given voxel coordinates.
func (m *Mask) At(x, y, z int) bool {
	return m.Data[z*m.Width*m.Height+y*m.Width+x]
}

// Set stores the mask membership at the given voxel coordinates.
func (m *Mask) Set(x, y, z int, inside bool) {
	m.Data[z*m.Width*m.Height+y*m.Width+x] = inside
}
