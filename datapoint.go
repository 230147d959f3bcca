package gorfcore

import (
	"math"
	"math/cmplx"
)

// SpeedOfLight is the free-space propagation speed in m/s.
const SpeedOfLight = 299792458

// DefaultRefImpedance is the system reference impedance in ohms used by
// callers that have no explicit Z0.
const DefaultRefImpedance = 50.0

// Datapoint is a single reflection coefficient measurement at one
// frequency. It is a plain value: construct once, copy freely, never
// mutate. All derived quantities are computed on demand.
type Datapoint struct {
	Freq int     // Hz
	Re   float64 // real part of the reflection coefficient
	Im   float64 // imaginary part of the reflection coefficient
}

// Z returns the measurement as a complex reflection coefficient.
func (p Datapoint) Z() complex128 {
	return complex(p.Re, p.Im)
}

// Phase returns the principal argument of the reflection coefficient,
// in the range (-pi, pi].
func (p Datapoint) Phase() float64 {
	return cmplx.Phase(p.Z())
}

// Gain returns the magnitude in dB. A zero-magnitude sample saturates
// to -Inf instead of failing.
func (p Datapoint) Gain() float64 {
	mag := cmplx.Abs(p.Z())
	if mag > 0 {
		return 20 * math.Log10(mag)
	}
	return math.Inf(-1)
}

// VSWR returns the voltage standing wave ratio. A magnitude of exactly
// one maps to 1. Magnitudes above one yield a negative ratio; callers
// use the sign as an out-of-bounds indicator, so it is not corrected.
func (p Datapoint) VSWR() float64 {
	mag := cmplx.Abs(p.Z())
	if mag == 1 {
		return 1
	}
	return (1 + mag) / (1 - mag)
}

// Wavelength returns the free-space wavelength in meters. At 0 Hz the
// division yields +Inf.
func (p Datapoint) Wavelength() float64 {
	return SpeedOfLight / float64(p.Freq)
}

// Impedance converts the reflection coefficient to an impedance
// relative to refImpedance.
func (p Datapoint) Impedance(refImpedance float64) complex128 {
	return GammaToImpedance(p.Z(), refImpedance)
}

// QFactor returns |X/R| of the equivalent impedance. A purely reactive
// impedance (R exactly zero) returns the -1 sentinel.
func (p Datapoint) QFactor(refImpedance float64) float64 {
	imp := p.Impedance(refImpedance)
	if real(imp) == 0 {
		return -1
	}
	return math.Abs(imag(imp) / real(imp))
}

// CapacitiveEquivalent returns the capacitance in farads presenting
// this point's reactance at its frequency.
func (p Datapoint) CapacitiveEquivalent(refImpedance float64) float64 {
	return ImpedanceToCapacitance(p.Impedance(refImpedance), float64(p.Freq))
}

// InductiveEquivalent returns the inductance in henries presenting
// this point's reactance at its frequency.
func (p Datapoint) InductiveEquivalent(refImpedance float64) float64 {
	return ImpedanceToInductance(p.Impedance(refImpedance), float64(p.Freq))
}
