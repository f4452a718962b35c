package partfile

import (
	"errors"
	"testing"
)

func TestPlanFixedCount(t *testing.T) {
	tests := []struct {
		size    int64
		count   int
		lengths []int64
	}{
		{100, 3, []int64{34, 33, 33}},
		{100, 4, []int64{25, 25, 25, 25}},
		{1, 1, []int64{1}},
		{7, 3, []int64{3, 2, 2}},
		{10, 10, []int64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		plan, err := PlanParts(tt.size, FixedCount(tt.count))
		if err != nil {
			t.Errorf("PlanParts(%d, FixedCount(%d)): %v", tt.size, tt.count, err)
			continue
		}
		if len(plan.Lengths) != len(tt.lengths) {
			t.Errorf("PlanParts(%d, FixedCount(%d)) = %v, want %v", tt.size, tt.count, plan.Lengths, tt.lengths)
			continue
		}
		for i, n := range tt.lengths {
			if plan.Lengths[i] != n {
				t.Errorf("PlanParts(%d, FixedCount(%d)) = %v, want %v", tt.size, tt.count, plan.Lengths, tt.lengths)
				break
			}
		}
	}
}

func TestPlanFixedCountProperties(t *testing.T) {
	// Lengths sum to size, differ by at most one, larger parts first.
	for size := int64(1); size <= 200; size++ {
		for count := 1; int64(count) <= size; count++ {
			plan, err := PlanParts(size, FixedCount(count))
			if err != nil {
				t.Fatalf("PlanParts(%d, FixedCount(%d)): %v", size, count, err)
			}
			if plan.Count() != count {
				t.Fatalf("size %d count %d: got %d parts", size, count, plan.Count())
			}
			if plan.TotalSize() != size {
				t.Fatalf("size %d count %d: lengths sum to %d", size, count, plan.TotalSize())
			}
			min, max := plan.Lengths[0], plan.Lengths[0]
			for i, n := range plan.Lengths {
				if n <= 0 {
					t.Fatalf("size %d count %d: zero-length part %d", size, count, i)
				}
				if n > plan.Lengths[0] {
					t.Fatalf("size %d count %d: part %d larger than part 0", size, count, i)
				}
				if i > 0 && n > plan.Lengths[i-1] {
					t.Fatalf("size %d count %d: lengths not non-increasing: %v", size, count, plan.Lengths)
				}
				if n < min {
					min = n
				}
				if n > max {
					max = n
				}
			}
			if max-min > 1 {
				t.Fatalf("size %d count %d: lengths differ by more than 1: %v", size, count, plan.Lengths)
			}
		}
	}
}

func TestPlanMaxPartSize(t *testing.T) {
	plan, err := PlanParts(100, MaxPartSize(30))
	if err != nil {
		t.Fatalf("PlanParts: %v", err)
	}
	want := []int64{25, 25, 25, 25}
	if plan.Count() != 4 {
		t.Fatalf("expected 4 parts, got %d", plan.Count())
	}
	for i, n := range want {
		if plan.Lengths[i] != n {
			t.Fatalf("lengths = %v, want %v", plan.Lengths, want)
		}
	}
}

func TestPlanMaxPartSizeProperties(t *testing.T) {
	for size := int64(1); size <= 150; size++ {
		for max := int64(1); max <= size+5; max++ {
			plan, err := PlanParts(size, MaxPartSize(max))
			if err != nil {
				t.Fatalf("PlanParts(%d, MaxPartSize(%d)): %v", size, max, err)
			}
			if plan.TotalSize() != size {
				t.Fatalf("size %d max %d: lengths sum to %d", size, max, plan.TotalSize())
			}
			for i, n := range plan.Lengths {
				if n > max {
					t.Fatalf("size %d max %d: part %d length %d exceeds bound", size, max, i, n)
				}
			}
		}
	}
}

func TestPlanDefault(t *testing.T) {
	// Large files get DefaultParts parts.
	plan, err := PlanParts(10_000, DefaultSizing())
	if err != nil {
		t.Fatalf("PlanParts: %v", err)
	}
	if plan.Count() != DefaultParts {
		t.Errorf("expected %d parts, got %d", DefaultParts, plan.Count())
	}

	// Files smaller than DefaultParts get one part per byte.
	plan, err = PlanParts(10, DefaultSizing())
	if err != nil {
		t.Fatalf("PlanParts: %v", err)
	}
	if plan.Count() != 10 {
		t.Errorf("expected 10 parts, got %d", plan.Count())
	}
	for i, n := range plan.Lengths {
		if n != 1 {
			t.Errorf("part %d has length %d, want 1", i, n)
		}
	}
}

func TestPlanRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		size   int64
		sizing Sizing
	}{
		{"zero size", 0, DefaultSizing()},
		{"negative size", -1, DefaultSizing()},
		{"zero count", 100, FixedCount(0)},
		{"negative count", 100, FixedCount(-3)},
		{"more parts than bytes", 1, FixedCount(2)},
		{"zero max size", 100, MaxPartSize(0)},
		{"negative max size", 100, MaxPartSize(-10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanParts(tt.size, tt.sizing)
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != KindInvalidInput {
				t.Errorf("expected KindInvalidInput, got %v", KindOf(err))
			}
		})
	}
}

func TestPlanOffsets(t *testing.T) {
	plan, err := PlanParts(100, FixedCount(3))
	if err != nil {
		t.Fatalf("PlanParts: %v", err)
	}
	wantOffsets := []int64{0, 34, 67}
	for i, want := range wantOffsets {
		if got := plan.Offset(i); got != want {
			t.Errorf("Offset(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestFixedCountZeroIsNotDefault(t *testing.T) {
	// FixedCount(0) must fail, not silently fall back to default sizing.
	_, err := PlanParts(100, FixedCount(0))
	if err == nil {
		t.Fatal("expected error for FixedCount(0)")
	}
	if !errorsIsInvalid(err) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func errorsIsInvalid(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindInvalidInput
}
