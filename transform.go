package gorfcore

import "math"

// GammaToImpedance converts a reflection coefficient to an impedance
// relative to refImpedance. An exact open (gamma == 1) returns +Inf
// instead of failing.
func GammaToImpedance(gamma complex128, refImpedance float64) complex128 {
	if gamma == 1 {
		return complex(math.Inf(1), 0)
	}
	return (-gamma - 1) / (gamma - 1) * complex(refImpedance, 0)
}

// ImpedanceToNorm normalizes an impedance to refImpedance.
func ImpedanceToNorm(z complex128, refImpedance float64) complex128 {
	return z / complex(refImpedance, 0)
}

// NormToImpedance denormalizes an impedance from refImpedance.
func NormToImpedance(z complex128, refImpedance float64) complex128 {
	return z * complex(refImpedance, 0)
}

// ReflectionCoefficient calculates gamma for an impedance relative to
// refImpedance.
func ReflectionCoefficient(z complex128, refImpedance float64) complex128 {
	ref := complex(refImpedance, 0)
	return (z - ref) / (z + ref)
}

// SerialToParallel converts a series R+jX impedance to its parallel
// equivalent. A zero impedance maps to (+Inf, +Inf); a missing
// component maps to a signed infinity in the corresponding slot, the
// sign following |z| squared.
func SerialToParallel(z complex128) complex128 {
	re, im := real(z), imag(z)
	sqSum := re*re + im*im
	switch {
	case re == 0 && im == 0:
		return complex(math.Inf(1), math.Inf(1))
	case im == 0:
		return complex(sqSum/re, math.Copysign(math.Inf(1), sqSum))
	case re == 0:
		return complex(math.Copysign(math.Inf(1), sqSum), sqSum/im)
	}
	return complex(sqSum/re, sqSum/im)
}

// ParallelToSerial converts a parallel impedance to its series
// equivalent. A zero impedance divides by zero and yields NaN; the
// caller must guard that case.
func ParallelToSerial(z complex128) complex128 {
	re, im := real(z), imag(z)
	sqSum := re*re + im*im
	return complex(re*im*im/sqSum, re*re*im/sqSum)
}

// ImpedanceToCapacitance returns the capacitive equivalent of a
// reactance: -Inf at 0 Hz, +Inf for a purely resistive impedance.
func ImpedanceToCapacitance(z complex128, freq float64) float64 {
	if freq == 0 {
		return math.Inf(-1)
	}
	if imag(z) == 0 {
		return math.Inf(1)
	}
	return -1 / (2 * math.Pi * freq * imag(z))
}

// ImpedanceToInductance returns the inductive equivalent of a
// reactance. At 0 Hz inductive reactance vanishes, so the result is 0.
// The asymmetry with the capacitive case is intentional.
func ImpedanceToInductance(z complex128, freq float64) float64 {
	if freq == 0 {
		return 0
	}
	return imag(z) / (2 * math.Pi * freq)
}

// GroupDelay estimates the group delay at index from the phase slope
// between the neighbouring samples. Indices are clamped to the valid
// range, giving a one-sided difference at the ends. Two clamped
// samples at the same frequency return 0.
func GroupDelay(data []Datapoint, index int) float64 {
	i0 := clamp(index-1, 0, len(data)-1)
	i1 := clamp(index+1, 0, len(data)-1)
	deltaAngle := data[i1].Phase() - data[i0].Phase()
	deltaFreq := data[i1].Freq - data[i0].Freq
	if deltaFreq == 0 {
		return 0
	}
	return -deltaAngle / (2 * math.Pi) / float64(deltaFreq)
}

// CorrAttData removes a known attenuation, in dB, from a gain
// measurement series. Non-positive attenuation returns the input
// slice untouched.
func CorrAttData(data []Datapoint, att float64) []Datapoint {
	if att <= 0 {
		return data
	}
	scale := math.Pow(10, att/20)
	out := make([]Datapoint, len(data))
	for i, p := range data {
		corrected := p.Z() * complex(scale, 0)
		out[i] = Datapoint{Freq: p.Freq, Re: real(corrected), Im: imag(corrected)}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
