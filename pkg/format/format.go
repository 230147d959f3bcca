package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Frequency renders hertz with an SI prefix, e.g. "1.5 MHz".
func Frequency(freq int) string {
	return humanize.SIWithDigits(float64(freq), 3, "Hz")
}

// Capacitance renders farads with an SI prefix. The infinities the
// reactance conversion produces render as a dash.
func Capacitance(farads float64) string {
	if math.IsInf(farads, 0) || math.IsNaN(farads) {
		return "-"
	}
	return humanize.SIWithDigits(farads, 3, "F")
}

// Inductance renders henries with an SI prefix.
func Inductance(henries float64) string {
	if math.IsInf(henries, 0) || math.IsNaN(henries) {
		return "-"
	}
	return humanize.SIWithDigits(henries, 3, "H")
}

// Impedance renders a complex impedance in R ± jX form.
func Impedance(z complex128) string {
	if imag(z) < 0 {
		return fmt.Sprintf("%.2f - j%.2f Ω", real(z), -imag(z))
	}
	return fmt.Sprintf("%.2f + j%.2f Ω", real(z), imag(z))
}

// VSWR renders a standing wave ratio. Negative ratios mark reflection
// magnitudes above one and render as a dash.
func VSWR(v float64) string {
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}

// QFactor renders a Q value, mapping the -1 sentinel for purely
// reactive impedances to a dash.
func QFactor(q float64) string {
	if q < 0 || math.IsInf(q, 0) || math.IsNaN(q) {
		return "-"
	}
	return fmt.Sprintf("%.2f", q)
}

// Gain renders a gain in dB, including the -Inf saturation of a
// zero-magnitude sample.
func Gain(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%.2f dB", db)
}

// GroupDelay renders a group delay in seconds with an SI prefix.
func GroupDelay(seconds float64) string {
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return "-"
	}
	return humanize.SIWithDigits(seconds, 3, "s")
}
