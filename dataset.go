package gorfcore

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"gonum.org/v1/gonum/interp"
)

// Errors returned by Dataset operations.
var (
	ErrInvariantViolation = errors.New("dataset: insert invariant violated")
	ErrFieldNotFound      = errors.New("dataset: field not found")
	ErrEmptyDataset       = errors.New("dataset: no data")
)

// DefaultFields are the S-parameter fields of a reflection/through
// sweep on a two-port instrument.
var DefaultFields = []string{"11", "21"}

type fieldInterp struct {
	re interp.PiecewiseLinear
	im interp.PiecewiseLinear
}

// Dataset stores one complex sample per field for every swept
// frequency and answers queries at arbitrary frequencies through
// lazily built piecewise-linear interpolators. Outside the sampled
// range the interpolators extrapolate flat, returning the first or
// last sample's value.
//
// The embedded mutex is advisory: none of the accessors lock it
// themselves. Callers running compound sequences (insert then
// interpolate, or a multi-field read expecting one consistent
// snapshot) must bracket them with Lock/Unlock.
type Dataset struct {
	sync.Mutex

	fields []string
	index  map[string]int

	data map[int][]complex128

	interp     []fieldInterp
	interValid bool
}

// NewDataset creates an empty dataset for the given field names, or
// DefaultFields when none are given. Field order fixes the tuple
// order of every stored entry.
func NewDataset(fields ...string) *Dataset {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	fields = slices.Clone(fields)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	return &Dataset{
		fields: fields,
		index:  index,
		data:   make(map[int][]complex128),
	}
}

// Fields returns the field names in tuple order.
func (d *Dataset) Fields() []string {
	return slices.Clone(d.fields)
}

// Insert stores one datapoint per field, all sharing one frequency.
// The interpolation cache is discarded.
func (d *Dataset) Insert(points []Datapoint) error {
	if len(points) != len(d.fields) {
		return fmt.Errorf("%w: got %d datapoints for %d fields",
			ErrInvariantViolation, len(points), len(d.fields))
	}
	freq := points[0].Freq
	values := make([]complex128, len(points))
	for i, p := range points {
		if p.Freq != freq {
			return fmt.Errorf("%w: datapoint frequencies differ (%d Hz vs %d Hz)",
				ErrInvariantViolation, p.Freq, freq)
		}
		values[i] = p.Z()
	}
	d.data[freq] = values
	d.interValid = false
	return nil
}

// InsertComplex stores one complex value per field under freq. The
// interpolation cache is discarded.
func (d *Dataset) InsertComplex(freq int, values []complex128) error {
	if len(values) != len(d.fields) {
		return fmt.Errorf("%w: got %d values for %d fields",
			ErrInvariantViolation, len(values), len(d.fields))
	}
	d.data[freq] = slices.Clone(values)
	d.interValid = false
	return nil
}

// Items yields one datapoint row per stored frequency, ascending. The
// sequence is restartable; each iteration re-sorts the current keys.
func (d *Dataset) Items() iter.Seq[[]Datapoint] {
	return func(yield func([]Datapoint) bool) {
		for _, freq := range d.sortedFreqs() {
			row := make([]Datapoint, len(d.fields))
			for i, z := range d.data[freq] {
				row[i] = Datapoint{Freq: freq, Re: real(z), Im: imag(z)}
			}
			if !yield(row) {
				return
			}
		}
	}
}

// ItemsField yields one named field's datapoints, frequency-ascending.
func (d *Dataset) ItemsField(field string) (iter.Seq[Datapoint], error) {
	i, ok := d.index[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	return func(yield func(Datapoint) bool) {
		for _, freq := range d.sortedFreqs() {
			z := d.data[freq][i]
			if !yield(Datapoint{Freq: freq, Re: real(z), Im: imag(z)}) {
				return
			}
		}
	}, nil
}

// ItemsComplex yields the raw frequency/value-tuple pairs, ascending.
func (d *Dataset) ItemsComplex() iter.Seq2[int, []complex128] {
	return func(yield func(int, []complex128) bool) {
		for _, freq := range d.sortedFreqs() {
			if !yield(freq, d.data[freq]) {
				return
			}
		}
	}
}

// MinFreq returns the lowest stored frequency.
func (d *Dataset) MinFreq() (int, error) {
	if len(d.data) == 0 {
		return 0, ErrEmptyDataset
	}
	return slices.Min(slices.Collect(maps.Keys(d.data))), nil
}

// MaxFreq returns the highest stored frequency.
func (d *Dataset) MaxFreq() (int, error) {
	if len(d.data) == 0 {
		return 0, ErrEmptyDataset
	}
	return slices.Max(slices.Collect(maps.Keys(d.data))), nil
}

// GenInterpolation rebuilds the per-field interpolator pairs from the
// current contents. It is called automatically by the Freq* queries
// whenever an insert has invalidated the cache; at least two stored
// frequencies are required to fit a piecewise-linear predictor.
func (d *Dataset) GenInterpolation() error {
	if len(d.data) == 0 {
		return ErrEmptyDataset
	}
	freqs := d.sortedFreqs()
	xs := make([]float64, len(freqs))
	for i, f := range freqs {
		xs[i] = float64(f)
	}

	built := make([]fieldInterp, len(d.fields))
	reals := make([]float64, len(freqs))
	imags := make([]float64, len(freqs))
	for fi := range d.fields {
		for i, f := range freqs {
			z := d.data[f][fi]
			reals[i] = real(z)
			imags[i] = imag(z)
		}
		if err := built[fi].re.Fit(xs, reals); err != nil {
			return fmt.Errorf("dataset: interpolating field %q (real): %w", d.fields[fi], err)
		}
		if err := built[fi].im.Fit(xs, imags); err != nil {
			return fmt.Errorf("dataset: interpolating field %q (imag): %w", d.fields[fi], err)
		}
	}

	d.interp = built
	d.interValid = true
	return nil
}

// Freq returns one interpolated datapoint per field at an arbitrary
// frequency, rebuilding the interpolators first if they are stale.
func (d *Dataset) Freq(freq int) ([]Datapoint, error) {
	if err := d.ensureInterp(); err != nil {
		return nil, err
	}
	points := make([]Datapoint, len(d.interp))
	for i, fi := range d.interp {
		points[i] = Datapoint{
			Freq: freq,
			Re:   fi.re.Predict(float64(freq)),
			Im:   fi.im.Predict(float64(freq)),
		}
	}
	return points, nil
}

// FreqComplex returns one interpolated complex value per field at an
// arbitrary frequency.
func (d *Dataset) FreqComplex(freq int) ([]complex128, error) {
	if err := d.ensureInterp(); err != nil {
		return nil, err
	}
	values := make([]complex128, len(d.interp))
	for i, fi := range d.interp {
		values[i] = complex(fi.re.Predict(float64(freq)), fi.im.Predict(float64(freq)))
	}
	return values, nil
}

// FreqField returns the interpolated datapoint of one named field.
func (d *Dataset) FreqField(freq int, field string) (Datapoint, error) {
	i, ok := d.index[field]
	if !ok {
		return Datapoint{}, fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	if err := d.ensureInterp(); err != nil {
		return Datapoint{}, err
	}
	fi := d.interp[i]
	return Datapoint{
		Freq: freq,
		Re:   fi.re.Predict(float64(freq)),
		Im:   fi.im.Predict(float64(freq)),
	}, nil
}

// FreqFieldComplex returns the interpolated complex value of one
// named field.
func (d *Dataset) FreqFieldComplex(freq int, field string) (complex128, error) {
	p, err := d.FreqField(freq, field)
	if err != nil {
		return 0, err
	}
	return p.Z(), nil
}

// Copy returns a dataset with the same fields and duplicated data.
// The interpolation cache is not copied; the first query on the copy
// rebuilds it.
func (d *Dataset) Copy() *Dataset {
	nd := NewDataset(d.fields...)
	for freq, values := range d.data {
		nd.data[freq] = slices.Clone(values)
	}
	return nd
}

func (d *Dataset) ensureInterp() error {
	if d.interValid {
		return nil
	}
	return d.GenInterpolation()
}

func (d *Dataset) sortedFreqs() []int {
	return slices.Sorted(maps.Keys(d.data))
}
