package gorfcore

import (
	"math"
	"testing"
)

func TestDatapointGain(t *testing.T) {
	tests := []struct {
		name string
		p    Datapoint
		want float64
	}{
		{"unit magnitude", Datapoint{1000000, 1, 0}, 0},
		{"tenth magnitude", Datapoint{1000000, 0.1, 0}, -20},
		{"ten magnitude", Datapoint{1000000, 10, 0}, 20},
		{"complex", Datapoint{1000000, 3, 4}, 20 * math.Log10(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Gain()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Gain() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestDatapointGainZeroMagnitude(t *testing.T) {
	got := Datapoint{1000000, 0, 0}.Gain()
	if !math.IsInf(got, -1) {
		t.Errorf("Gain() = %g, want -Inf", got)
	}
}

func TestDatapointVSWR(t *testing.T) {
	tests := []struct {
		name string
		p    Datapoint
		want float64
	}{
		{"zero magnitude", Datapoint{1000000, 0, 0}, 1},
		{"unit magnitude", Datapoint{1000000, 1, 0}, 1},
		{"unit magnitude imag", Datapoint{1000000, 0, 1}, 1},
		{"half magnitude", Datapoint{1000000, 0.5, 0}, 3},
		// |z| > 1 yields a negative ratio, kept as the out-of-bounds
		// indicator.
		{"above unity", Datapoint{1000000, 2, 0}, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.VSWR()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("VSWR() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestDatapointPhase(t *testing.T) {
	tests := []struct {
		name string
		p    Datapoint
		want float64
	}{
		{"positive real", Datapoint{1000000, 1, 0}, 0},
		{"positive imag", Datapoint{1000000, 0, 1}, math.Pi / 2},
		{"negative real", Datapoint{1000000, -1, 0}, math.Pi},
		{"negative imag", Datapoint{1000000, 0, -1}, -math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Phase()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Phase() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestDatapointWavelength(t *testing.T) {
	got := Datapoint{Freq: SpeedOfLight}.Wavelength()
	if got != 1 {
		t.Errorf("Wavelength() = %g, want 1", got)
	}

	got = Datapoint{Freq: 100000000}.Wavelength()
	if math.Abs(got-2.99792458) > 1e-12 {
		t.Errorf("Wavelength() = %g, want 2.99792458", got)
	}

	// 0 Hz divides by zero and must come back as +Inf, not a panic.
	got = Datapoint{Freq: 0}.Wavelength()
	if !math.IsInf(got, 1) {
		t.Errorf("Wavelength() at 0 Hz = %g, want +Inf", got)
	}
}

func TestDatapointImpedance(t *testing.T) {
	// A matched load reflects nothing.
	z := Datapoint{1000000, 0, 0}.Impedance(50)
	if real(z) != 50 || imag(z) != 0 {
		t.Errorf("Impedance() = %v, want (50+0i)", z)
	}

	z = Datapoint{1000000, 0, 0}.Impedance(75)
	if real(z) != 75 || imag(z) != 0 {
		t.Errorf("Impedance() = %v, want (75+0i)", z)
	}
}

func TestDatapointQFactor(t *testing.T) {
	// Matched load: purely resistive, Q = 0.
	if got := (Datapoint{1000000, 0, 0}).QFactor(50); got != 0 {
		t.Errorf("QFactor() = %g, want 0", got)
	}

	// Gamma = j maps to a purely reactive 50j; the resistive part is
	// exactly zero and the sentinel applies.
	if got := (Datapoint{1000000, 0, 1}).QFactor(50); got != -1 {
		t.Errorf("QFactor() = %g, want -1 sentinel", got)
	}
}

func TestDatapointEquivalentsAtZeroFrequency(t *testing.T) {
	p := Datapoint{0, 0.5, 0.5}

	if got := p.CapacitiveEquivalent(50); !math.IsInf(got, -1) {
		t.Errorf("CapacitiveEquivalent() at 0 Hz = %g, want -Inf", got)
	}
	// Inductive reactance vanishes at DC; asymmetric with the
	// capacitive case on purpose.
	if got := p.InductiveEquivalent(50); got != 0 {
		t.Errorf("InductiveEquivalent() at 0 Hz = %g, want 0", got)
	}
}

func TestDatapointEquivalents(t *testing.T) {
	p := Datapoint{1000000, 0, 0.5}
	imp := p.Impedance(50)

	wantC := -1 / (2 * math.Pi * 1e6 * imag(imp))
	if got := p.CapacitiveEquivalent(50); math.Abs(got-wantC) > math.Abs(wantC)*1e-12 {
		t.Errorf("CapacitiveEquivalent() = %g, want %g", got, wantC)
	}

	wantL := imag(imp) / (2 * math.Pi * 1e6)
	if got := p.InductiveEquivalent(50); math.Abs(got-wantL) > math.Abs(wantL)*1e-12 {
		t.Errorf("InductiveEquivalent() = %g, want %g", got, wantL)
	}
}
