package dicomio

import (
	"testing"

	"qmrelax/internal/models"
)

func TestRescale(t *testing.T) {
	cases := []struct {
		raw              int
		slope, intercept float64
		expected         float64
	}{
		{100, 1.0, 0.0, 100},
		{100, 0.5, 0.0, 50},
		{100, 1.0, -1024.0, -924},
		{0, 2.0, 10.0, 10},
	}

	for _, tc := range cases {
		if got := Rescale(tc.raw, tc.slope, tc.intercept); got != tc.expected {
			t.Errorf("Rescale(%d, %v, %v) = %v, expected %v",
				tc.raw, tc.slope, tc.intercept, got, tc.expected)
		}
	}
}

func TestThreshold(t *testing.T) {
	volume := models.NewVolume(2, 2, 1)
	volume.Data = []float64{0, 0.5, 0.75, 1}

	mask := Threshold(volume, 0.5)

	// Strictly above the threshold only
	expected := []bool{false, false, true, true}
	for i, want := range expected {
		if mask.Data[i] != want {
			t.Errorf("Voxel %d: expected %v, got %v", i, want, mask.Data[i])
		}
	}
	if mask.Count() != 2 {
		t.Errorf("Expected 2 masked voxels, got %d", mask.Count())
	}
	if mask.Width != 2 || mask.Height != 2 || mask.Depth != 1 {
		t.Errorf("Mask shape mismatch: %dx%dx%d", mask.Width, mask.Height, mask.Depth)
	}
}

// TestLoadVolumeMissingDir verifies a readable error for a missing
// series directory.
func TestLoadVolumeMissingDir(t *testing.T) {
	if _, err := LoadVolume(t.TempDir() + "/no-such-series"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

// TestLoadVolumeEmptyDir verifies a directory without DICOM files fails
func TestLoadVolumeEmptyDir(t *testing.T) {
	if _, err := LoadVolume(t.TempDir()); err == nil {
		t.Error("Expected error for directory without DICOM files")
	}
}
