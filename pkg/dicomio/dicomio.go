// Package dicomio loads parameter-map and mask volumes from directories
// of DICOM series, one file per slice.
package dicomio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"qmrelax/internal/models"
)

// sliceData holds one decoded DICOM slice before volume assembly.
type sliceData struct {
	values   []float64
	rows     int
	cols     int
	instance int
}

// LoadVolume reads all DICOM files in a directory into a single volume.
// Slices are ordered by their InstanceNumber tag, falling back to
// filename order when the tag is absent. Pixel values are rescaled with
// the RescaleSlope and RescaleIntercept tags where present.
func LoadVolume(dir string) (*models.Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading series directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".dcm" || ext == ".dicom" {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no DICOM files found in %s", dir)
	}
	sort.Strings(files)

	slices := make([]sliceData, 0, len(files))
	for i, name := range files {
		slice, err := loadSlice(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading slice %s: %w", name, err)
		}
		if slice.instance == 0 {
			slice.instance = i + 1
		}
		slices = append(slices, slice)
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].instance < slices[j].instance
	})

	rows, cols := slices[0].rows, slices[0].cols
	for _, slice := range slices {
		if slice.rows != rows || slice.cols != cols {
			return nil, fmt.Errorf("inconsistent slice dimensions in %s: %dx%d vs %dx%d",
				dir, slice.cols, slice.rows, cols, rows)
		}
	}

	volume := models.NewVolume(cols, rows, len(slices))
	for z, slice := range slices {
		copy(volume.Data[z*rows*cols:(z+1)*rows*cols], slice.values)
	}
	return volume, nil
}

// LoadMask reads a DICOM series like LoadVolume and thresholds it into a
// boolean mask: voxels strictly above the threshold belong to the tissue.
func LoadMask(dir string, threshold float64) (*models.Mask, error) {
	volume, err := LoadVolume(dir)
	if err != nil {
		return nil, err
	}
	return Threshold(volume, threshold), nil
}

// Threshold converts a volume into a boolean mask. Voxels with values
// strictly above the threshold are marked as tissue.
func Threshold(volume *models.Volume, threshold float64) *models.Mask {
	mask := models.NewMask(volume.Width, volume.Height, volume.Depth)
	for i, v := range volume.Data {
		mask.Data[i] = v > threshold
	}
	return mask
}

// loadSlice decodes a single DICOM file into rescaled float voxel values.
func loadSlice(path string) (sliceData, error) {
	dataset, err := dicom.ParseFile(path, nil)
	if err != nil {
		return sliceData{}, fmt.Errorf("parsing DICOM file: %w", err)
	}

	element, err := dataset.FindElementByTag(tag.PixelData)
	if err != nil {
		return sliceData{}, fmt.Errorf("no pixel data element: %w", err)
	}
	info := dicom.MustGetPixelDataInfo(element.Value)
	if len(info.Frames) == 0 {
		return sliceData{}, fmt.Errorf("pixel data holds no frames")
	}

	native, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return sliceData{}, fmt.Errorf("decoding native frame: %w", err)
	}

	slope := floatTag(&dataset, tag.RescaleSlope, 1.0)
	intercept := floatTag(&dataset, tag.RescaleIntercept, 0.0)

	values := make([]float64, len(native.Data))
	for i, samples := range native.Data {
		// First sample only; quantitative maps are single-channel
		values[i] = Rescale(samples[0], slope, intercept)
	}

	return sliceData{
		values:   values,
		rows:     native.Rows,
		cols:     native.Cols,
		instance: intTag(&dataset, tag.InstanceNumber, 0),
	}, nil
}

// Rescale maps a stored pixel value to its physical value via the DICOM
// rescale transform value = raw*slope + intercept.
func Rescale(raw int, slope, intercept float64) float64 {
	return float64(raw)*slope + intercept
}

// floatTag reads a numeric tag stored as a decimal string, returning the
// fallback when the tag is absent or malformed.
func floatTag(dataset *dicom.Dataset, t tag.Tag, fallback float64) float64 {
	element, err := dataset.FindElementByTag(t)
	if err != nil {
		return fallback
	}
	switch v := element.Value.GetValue().(type) {
	case []string:
		if len(v) == 0 {
			return fallback
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
		if err != nil {
			return fallback
		}
		return parsed
	case []float64:
		if len(v) == 0 {
			return fallback
		}
		return v[0]
	}
	return fallback
}

// intTag reads an integer-valued tag, returning the fallback when the
// tag is absent or malformed.
func intTag(dataset *dicom.Dataset, t tag.Tag, fallback int) int {
	element, err := dataset.FindElementByTag(t)
	if err != nil {
		return fallback
	}
	switch v := element.Value.GetValue().(type) {
	case []int:
		if len(v) == 0 {
			return fallback
		}
		return v[0]
	case []string:
		if len(v) == 0 {
			return fallback
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v[0]))
		if err != nil {
			return fallback
		}
		return parsed
	}
	return fallback
}
