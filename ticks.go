package figkit

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// Unit scales tick values and suffixes their labels with a mark, e.g.
// Unit{math.Pi, "π"} labels ticks in multiples of π.
type Unit struct {
	Base float64
	Mark string
}

// Sign selects how tick labels are signed.
type Sign int

const (
	SignAuto   Sign = iota // explicit plus only when negative ticks are present
	SignAlways             // explicit plus on every nonnegative tick
	SignNever              // minus only
)

// DecimalTicks is a plot.Ticker labelling ticks as fixed-precision decimals
// of a unit, with explicit signs. Tick locations come from Ticker, or
// plot.DefaultTicks when nil.
type DecimalTicks struct {
	Digits       int
	Sign         Sign
	UnsignedZero bool // leave zero unsigned even when signing
	Unit         Unit
	Ticker       plot.Ticker
}

// Ticks implements plot.Ticker.
func (t DecimalTicks) Ticks(min, max float64) []plot.Tick {
	ticker := t.Ticker
	if ticker == nil {
		ticker = plot.DefaultTicks{}
	}
	base := t.Unit.Base
	if base == 0.0 {
		base = 1.0
	}
	ticks := ticker.Ticks(min, max)
	signed := t.signed(ticks)
	for i, tick := range ticks {
		if tick.Label == "" { // minor tick
			continue
		}
		v := tick.Value / base
		label := strconv.FormatFloat(math.Abs(v), 'f', t.Digits, 64) + t.Unit.Mark
		ticks[i].Label = signPrefix(v, signed, !t.UnsignedZero) + label
	}
	return ticks
}

func (t DecimalTicks) signed(ticks []plot.Tick) bool {
	switch t.Sign {
	case SignAlways:
		return true
	case SignNever:
		return false
	}
	for _, tick := range ticks {
		if tick.Value < 0.0 {
			return true
		}
	}
	return false
}

// FractionTicks is a plot.Ticker placing major ticks at every multiple of
// Unit.Base/D and labelling them as reduced fractions of the unit, e.g.
// -π, -π/2, 0, +π/2, +π for D = 2 and a π unit.
type FractionTicks struct {
	D        int // denominator
	Sign     Sign
	SignZero bool // sign zero as well when signing
	Unit     Unit
}

// Ticks implements plot.Ticker.
func (t FractionTicks) Ticks(min, max float64) []plot.Tick {
	d := t.D
	if d < 1 {
		d = 1
	}
	base := t.Unit.Base
	if base == 0.0 {
		base = 1.0
	}
	step := base / float64(d)

	lo := int(math.Ceil(min / step))
	hi := int(math.Floor(max / step))
	var ticks []plot.Tick
	for k := lo; k <= hi; k++ {
		ticks = append(ticks, plot.Tick{Value: float64(k) * step})
	}
	signed := t.signed(ticks)
	for i, tick := range ticks {
		k := lo + i
		ticks[i].Label = signPrefix(tick.Value, signed, t.SignZero) + t.fraction(k, d)
	}
	return ticks
}

// fraction renders |k/d| of the unit in lowest terms.
func (t FractionTicks) fraction(k, d int) string {
	if k < 0 {
		k = -k
	}
	if k == 0 {
		return "0"
	}
	if g := gcd(k, d); 1 < g {
		k /= g
		d /= g
	}
	s := strconv.Itoa(k) + t.Unit.Mark
	if k == 1 && t.Unit.Mark != "" {
		s = t.Unit.Mark
	}
	if d != 1 {
		s += "/" + strconv.Itoa(d)
	}
	return s
}

func (t FractionTicks) signed(ticks []plot.Tick) bool {
	switch t.Sign {
	case SignAlways:
		return true
	case SignNever:
		return false
	}
	for _, tick := range ticks {
		if tick.Value < 0.0 {
			return true
		}
	}
	return false
}

func signPrefix(v float64, signed, signZero bool) string {
	if v < 0.0 {
		return "-"
	} else if signed && (0.0 < v || signZero) {
		return "+"
	}
	return ""
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
