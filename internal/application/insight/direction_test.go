package insight

import (
	"testing"

	"fit-insights/internal/domain/insight"
)

func TestDirection_NilAndZeroGuards(t *testing.T) {
	if Direction(nil, ptr(50.0), 5.0, false) != nil {
		t.Fatal("expected nil for missing current")
	}
	if Direction(ptr(50.0), nil, 5.0, false) != nil {
		t.Fatal("expected nil for missing baseline")
	}
	if Direction(ptr(50.0), ptr(0.0), 5.0, false) != nil {
		t.Fatal("expected nil for zero baseline")
	}
}

func TestDirection_StableInsideThreshold(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		baseline float64
	}{
		{"small rise", 52.0, 50.0},
		{"small drop", 48.0, 50.0},
		{"just below threshold", 52.49, 50.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Direction(ptr(tc.current), ptr(tc.baseline), 5.0, false)
			if d == nil || d.Direction != insight.DirectionStable {
				t.Fatalf("expected stable, got %+v", d)
			}
		})
	}
}

func TestDirection_SignDecidesOutsideThreshold(t *testing.T) {
	up := Direction(ptr(55.0), ptr(50.0), 5.0, false)
	if up == nil || up.Direction != insight.DirectionUp {
		t.Fatalf("expected up, got %+v", up)
	}
	if up.ChangePct != 10.0 {
		t.Fatalf("expected change_pct 10.0, got %v", up.ChangePct)
	}

	down := Direction(ptr(45.0), ptr(50.0), 5.0, false)
	if down == nil || down.Direction != insight.DirectionDown {
		t.Fatalf("expected down, got %+v", down)
	}
	if down.ChangePct != -10.0 {
		t.Fatalf("expected change_pct -10.0, got %v", down.ChangePct)
	}
}

func TestDirection_InverseFlipsLabel(t *testing.T) {
	// Resting heart rate going up is a downturn.
	d := Direction(ptr(60.0), ptr(50.0), 5.0, true)
	if d == nil || d.Direction != insight.DirectionDown {
		t.Fatalf("expected down with inverse, got %+v", d)
	}
	d = Direction(ptr(45.0), ptr(50.0), 5.0, true)
	if d == nil || d.Direction != insight.DirectionUp {
		t.Fatalf("expected up with inverse, got %+v", d)
	}
	// The stable band is unaffected by inverse.
	d = Direction(ptr(51.0), ptr(50.0), 5.0, true)
	if d == nil || d.Direction != insight.DirectionStable {
		t.Fatalf("expected stable with inverse, got %+v", d)
	}
}

func TestDirection_ChangePctRounding(t *testing.T) {
	d := Direction(ptr(51.23), ptr(50.0), 5.0, false)
	if d == nil || d.ChangePct != 2.5 {
		t.Fatalf("expected change_pct 2.5, got %+v", d)
	}
	if d.Baseline != 50.0 || d.Current != 51.23 {
		t.Fatalf("expected echoed baseline/current, got %+v", d)
	}
}
