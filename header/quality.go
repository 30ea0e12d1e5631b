package header

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httphdr/internal/grammar"
)

// Quality is a quality value (qvalue) stored in thousandths, 0..1000.
type Quality uint16

const (
	QualityMin Quality = 0
	QualityMax Quality = 1000
)

// NewQuality converts a weight in [0, 1] to Quality rounding it to 3 decimal places.
// NaN, infinities and values out of range are rejected.
func NewQuality(v float64) (Quality, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return 0, errtrace.Wrap(newInvalidArgumentError("quality %v out of range [0, 1]", v))
	}
	return Quality(math.Round(v * 1000)), nil
}

// Float returns the quality as a number in [0, 1].
func (q Quality) Float() float64 { return float64(q) / 1000 }

// String renders the quality in the shortest qvalue form, e.g. "1", "0.5", "0.123".
func (q Quality) String() string { return strconv.FormatFloat(q.Float(), 'f', -1, 64) }

func (q Quality) IsValid() bool { return q <= QualityMax }

// parseQValue parses the value of a "q" parameter.
func parseQValue(s string) (Quality, bool) {
	sc := grammar.NewScanner(s)
	v, ok := sc.ReadNumber()
	if !ok || sc.HasNext() {
		return 0, false
	}
	q, err := NewQuality(v)
	if err != nil {
		return 0, false
	}
	return q, true
}

// Weight is an optional quality factor embedded into weighted alternatives.
// An unset weight means the default quality 1 and is not rendered.
type Weight struct {
	q   Quality
	set bool
}

// NewWeight returns a Weight explicitly set to v.
func NewWeight(v float64) (Weight, error) {
	q, err := NewQuality(v)
	if err != nil {
		return Weight{}, errtrace.Wrap(err)
	}
	return Weight{q: q, set: true}, nil
}

// Quality returns the effective quality, [QualityMax] when unset.
func (w Weight) Quality() Quality {
	if !w.set {
		return QualityMax
	}
	return w.q
}

// Q returns the effective quality as a number in [0, 1].
func (w Weight) Q() float64 { return w.Quality().Float() }

// HasQ reports whether the weight was set explicitly.
func (w Weight) HasQ() bool { return w.set }

// SetQ sets the quality. On error the weight is left unchanged.
func (w *Weight) SetQ(v float64) error {
	q, err := NewQuality(v)
	if err != nil {
		return errtrace.Wrap(err)
	}
	w.q, w.set = q, true
	return nil
}

// ClearQ resets the weight to the default.
func (w *Weight) ClearQ() { *w = Weight{} }

func (w Weight) renderTo(wr io.Writer) (int, error) {
	if !w.set {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprint(wr, "; q=", w.q))
}
