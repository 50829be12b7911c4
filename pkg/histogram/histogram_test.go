package histogram

import (
	"testing"
)

func TestCompute(t *testing.T) {
	values := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}
	hist, err := Compute(values, 4)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(hist.Counts) != 4 {
		t.Fatalf("Expected 4 bins, got %d", len(hist.Counts))
	}
	if len(hist.Edges) != 5 {
		t.Fatalf("Expected 5 edges, got %d", len(hist.Edges))
	}

	total := 0
	for _, count := range hist.Counts {
		total += count
	}
	if total != len(values) {
		t.Errorf("Expected counts to sum to %d, got %d", len(values), total)
	}

	// Bins span [0, 3.5] with width 0.875
	if hist.Edges[0] != 0 || hist.Edges[4] != 3.5 {
		t.Errorf("Expected edges [0, 3.5], got [%v, %v]", hist.Edges[0], hist.Edges[4])
	}
	for i := 0; i+1 < len(hist.Edges); i++ {
		if hist.Edges[i] >= hist.Edges[i+1] {
			t.Errorf("Edges not strictly increasing at %d: %v >= %v", i, hist.Edges[i], hist.Edges[i+1])
		}
	}
}

// TestComputeMaxInLastBin verifies the maximum value is clamped into the
// final bin rather than falling outside the range.
func TestComputeMaxInLastBin(t *testing.T) {
	hist, err := Compute([]float64{0, 1, 2, 3, 4}, 4)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if hist.Counts[3] != 2 {
		t.Errorf("Expected last bin to hold 3 and 4, got count %d", hist.Counts[3])
	}
}

func TestComputeDegenerate(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		hist, err := Compute(nil, 8)
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if len(hist.Counts) != 1 || hist.Counts[0] != 0 {
			t.Errorf("Expected single empty bin, got %v", hist.Counts)
		}
	})

	t.Run("Constant", func(t *testing.T) {
		hist, err := Compute([]float64{2, 2, 2}, 8)
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if len(hist.Counts) != 1 || hist.Counts[0] != 3 {
			t.Errorf("Expected single bin with all 3 values, got %v", hist.Counts)
		}
	})

	t.Run("InvalidBins", func(t *testing.T) {
		if _, err := Compute([]float64{1, 2}, 0); err == nil {
			t.Error("Expected error for zero bin count")
		}
	})
}

func TestComputeJoint(t *testing.T) {
	x := []float64{0, 0, 1, 1}
	y := []float64{0, 1, 0, 1}

	joint, err := ComputeJoint(x, y, 2)
	if err != nil {
		t.Fatalf("ComputeJoint failed: %v", err)
	}

	if len(joint.Counts) != 2 || len(joint.Counts[0]) != 2 {
		t.Fatalf("Expected 2x2 count grid, got %dx%d", len(joint.Counts), len(joint.Counts[0]))
	}
	// Each (x, y) corner pair appears exactly once
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if joint.Counts[i][j] != 1 {
				t.Errorf("Expected count 1 at [%d][%d], got %d", i, j, joint.Counts[i][j])
			}
		}
	}
}

func TestComputeJointLengthMismatch(t *testing.T) {
	if _, err := ComputeJoint([]float64{1, 2}, []float64{1}, 4); err == nil {
		t.Error("Expected error for mismatched array lengths")
	}
}
