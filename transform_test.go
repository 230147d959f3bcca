package gorfcore

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestGammaToImpedance(t *testing.T) {
	tests := []struct {
		name  string
		gamma complex128
		ref   float64
		want  complex128
	}{
		{"matched", 0, 50, 50},
		{"matched 75", 0, 75, 75},
		{"short", -1, 50, 0},
		{"half", 0.5, 50, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GammaToImpedance(tt.gamma, tt.ref)
			if cmplx.Abs(got-tt.want) > 1e-9 {
				t.Errorf("GammaToImpedance(%v, %g) = %v, want %v", tt.gamma, tt.ref, got, tt.want)
			}
		})
	}
}

func TestGammaToImpedanceOpen(t *testing.T) {
	got := GammaToImpedance(1, 50)
	if !math.IsInf(real(got), 1) {
		t.Errorf("GammaToImpedance(1, 50) = %v, want +Inf real part", got)
	}
}

func TestReflectionRoundTrip(t *testing.T) {
	gammas := []complex128{
		complex(0.5, 0),
		complex(-0.3, 0.4),
		complex(0, 0.9),
		complex(0.1, -0.1),
		complex(-0.99, 0),
	}
	refs := []float64{50, 75, 600}

	for _, ref := range refs {
		for _, gamma := range gammas {
			got := ReflectionCoefficient(GammaToImpedance(gamma, ref), ref)
			if cmplx.Abs(got-gamma) > 1e-12 {
				t.Errorf("round trip of %v at Z0=%g = %v", gamma, ref, got)
			}
		}
	}
}

func TestNormRoundTrip(t *testing.T) {
	zs := []complex128{complex(50, 0), complex(12.5, -80), complex(0, 3)}
	for _, z := range zs {
		// Inverse scaling must be exact.
		if got := ImpedanceToNorm(NormToImpedance(z, 50), 50); got != z {
			t.Errorf("norm round trip of %v = %v", z, got)
		}
	}
}

func TestSerialToParallel(t *testing.T) {
	got := SerialToParallel(complex(3, 4))
	want := complex(25.0/3.0, 25.0/4.0)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("SerialToParallel(3+4i) = %v, want %v", got, want)
	}
}

func TestSerialToParallelEdges(t *testing.T) {
	got := SerialToParallel(0)
	if !math.IsInf(real(got), 1) || !math.IsInf(imag(got), 1) {
		t.Errorf("SerialToParallel(0) = %v, want (+Inf, +Inf)", got)
	}

	got = SerialToParallel(complex(3, 0))
	if real(got) != 3 || !math.IsInf(imag(got), 1) {
		t.Errorf("SerialToParallel(3+0i) = %v, want (3, +Inf)", got)
	}

	got = SerialToParallel(complex(0, 2))
	if !math.IsInf(real(got), 1) || imag(got) != 2 {
		t.Errorf("SerialToParallel(0+2i) = %v, want (+Inf, 2)", got)
	}
}

func TestParallelToSerial(t *testing.T) {
	got := ParallelToSerial(complex(1, 1))
	want := complex(0.5, 0.5)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("ParallelToSerial(1+1i) = %v, want %v", got, want)
	}
}

func TestSerialParallelRoundTrip(t *testing.T) {
	zs := []complex128{
		complex(3, 4),
		complex(50, -25),
		complex(0.1, 7),
		complex(-12, 30),
	}
	for _, z := range zs {
		got := SerialToParallel(ParallelToSerial(z))
		if cmplx.Abs(got-z) > cmplx.Abs(z)*1e-12 {
			t.Errorf("SerialToParallel(ParallelToSerial(%v)) = %v", z, got)
		}
		got = ParallelToSerial(SerialToParallel(z))
		if cmplx.Abs(got-z) > cmplx.Abs(z)*1e-12 {
			t.Errorf("ParallelToSerial(SerialToParallel(%v)) = %v", z, got)
		}
	}
}

func TestImpedanceToCapacitance(t *testing.T) {
	if got := ImpedanceToCapacitance(complex(50, -100), 0); !math.IsInf(got, -1) {
		t.Errorf("capacitance at 0 Hz = %g, want -Inf", got)
	}
	if got := ImpedanceToCapacitance(complex(50, 0), 1e6); !math.IsInf(got, 1) {
		t.Errorf("capacitance of resistive z = %g, want +Inf", got)
	}

	got := ImpedanceToCapacitance(complex(50, -100), 1e6)
	want := 1 / (2 * math.Pi * 1e8)
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("capacitance = %g, want %g", got, want)
	}
}

func TestImpedanceToInductance(t *testing.T) {
	if got := ImpedanceToInductance(complex(50, 100), 0); got != 0 {
		t.Errorf("inductance at 0 Hz = %g, want 0", got)
	}

	got := ImpedanceToInductance(complex(50, 100), 1e6)
	want := 100 / (2 * math.Pi * 1e6)
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("inductance = %g, want %g", got, want)
	}
}

// phasePoint builds a unit-magnitude datapoint with a given phase.
func phasePoint(freq int, phase float64) Datapoint {
	return Datapoint{Freq: freq, Re: math.Cos(phase), Im: math.Sin(phase)}
}

func TestGroupDelay(t *testing.T) {
	// Linear phase of -0.1 rad per MHz.
	data := []Datapoint{
		phasePoint(1000000, 0),
		phasePoint(2000000, -0.1),
		phasePoint(3000000, -0.2),
	}

	// Interior: central difference over points 0 and 2.
	got := GroupDelay(data, 1)
	want := 0.2 / (2 * math.Pi * 2e6)
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("GroupDelay(data, 1) = %g, want %g", got, want)
	}

	// Boundary: clamped, one-sided difference over points 0 and 1.
	got = GroupDelay(data, 0)
	want = 0.1 / (2 * math.Pi * 1e6)
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("GroupDelay(data, 0) = %g, want %g", got, want)
	}

	got = GroupDelay(data, 2)
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("GroupDelay(data, 2) = %g, want %g", got, want)
	}
}

func TestGroupDelaySameFrequency(t *testing.T) {
	data := []Datapoint{
		phasePoint(1000000, 0),
		phasePoint(1000000, -0.5),
	}
	if got := GroupDelay(data, 0); got != 0 {
		t.Errorf("GroupDelay over equal frequencies = %g, want 0", got)
	}
}

func TestCorrAttDataIdentity(t *testing.T) {
	data := []Datapoint{
		{1000000, 0.5, -0.5},
		{2000000, 0.1, 0.2},
	}

	for _, att := range []float64{0, -3} {
		got := CorrAttData(data, att)
		if len(got) != len(data) || &got[0] != &data[0] {
			t.Errorf("CorrAttData(data, %g) must return the input unchanged", att)
		}
	}
}

func TestCorrAttDataScale(t *testing.T) {
	data := []Datapoint{
		{1000000, 0.05, -0.05},
		{2000000, 0.01, 0.02},
	}

	got := CorrAttData(data, 20)
	if len(got) != len(data) {
		t.Fatalf("length = %d, want %d", len(got), len(data))
	}
	for i, p := range got {
		if p.Freq != data[i].Freq {
			t.Errorf("point %d frequency changed: %d", i, p.Freq)
		}
		// 20 dB is exactly a factor of 10 in magnitude.
		wantMag := cmplx.Abs(data[i].Z()) * 10
		if math.Abs(cmplx.Abs(p.Z())-wantMag) > wantMag*1e-12 {
			t.Errorf("point %d magnitude = %g, want %g", i, cmplx.Abs(p.Z()), wantMag)
		}
	}
}
