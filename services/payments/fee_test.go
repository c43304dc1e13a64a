package payments

import (
	"errors"
	"testing"
)

func TestComputeSplit(t *testing.T) {
	cases := []struct {
		name          string
		totalCents    int64
		feePercent    float64
		wantFee       int64
		wantCaregiver int64
	}{
		{"standard booking", 10000, 15, 1500, 8500},
		{"zero total", 0, 15, 0, 0},
		{"rounds half up", 10, 15, 2, 8}, // 1.5 cents -> 2
		{"rounds down below half", 9, 15, 1, 8},
		{"odd amount", 9999, 15, 1500, 8499},
		{"one cent", 1, 15, 0, 1},
		{"large amount", 1234567, 15, 185185, 1049382},
		{"custom percent", 10000, 20, 2000, 8000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			split, err := ComputeSplit(tc.totalCents, tc.feePercent)
			if err != nil {
				t.Fatalf("ComputeSplit(%d, %v) error: %v", tc.totalCents, tc.feePercent, err)
			}
			if split.PlatformFeeCents != tc.wantFee {
				t.Errorf("platform fee = %d, want %d", split.PlatformFeeCents, tc.wantFee)
			}
			if split.CaregiverAmountCents != tc.wantCaregiver {
				t.Errorf("caregiver amount = %d, want %d", split.CaregiverAmountCents, tc.wantCaregiver)
			}
		})
	}
}

// The split must reconstruct the total exactly for any amount; rounding loss
// would strand cents or overcharge the caregiver.
func TestComputeSplitSumsToTotal(t *testing.T) {
	for total := int64(0); total <= 5000; total++ {
		split, err := ComputeSplit(total, PlatformFeePercent)
		if err != nil {
			t.Fatalf("ComputeSplit(%d) error: %v", total, err)
		}
		if split.PlatformFeeCents+split.CaregiverAmountCents != total {
			t.Fatalf("split of %d does not sum: fee=%d caregiver=%d",
				total, split.PlatformFeeCents, split.CaregiverAmountCents)
		}
		if split.PlatformFeeCents < 0 || split.CaregiverAmountCents < 0 {
			t.Fatalf("negative component for total %d: %+v", total, split)
		}
	}
}

func TestComputeSplitDeterministic(t *testing.T) {
	first, err := ComputeSplit(73342, PlatformFeePercent)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		again, err := ComputeSplit(73342, PlatformFeePercent)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("split not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestComputeSplitNegativeAmount(t *testing.T) {
	_, err := ComputeSplit(-1, PlatformFeePercent)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("error = %v, want ErrInvalidAmount", err)
	}
}
