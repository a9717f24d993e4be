package templates

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Range is a parsed threshold expression. Unbounded sides use ±Inf.
type Range struct {
	Min          float64
	Max          float64
	MinInclusive bool
	MaxInclusive bool
}

var (
	comparatorExpr = regexp.MustCompile(`^\s*(<=|>=|<|>)\s*(-?\d+(?:\.\d+)?)`)
	ratioExpr      = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*:\s*1\s+(?:a|to)\s+(\d+(?:\.\d+)?)\s*:\s*1`)
	intervalExpr   = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)`)
	pointExpr      = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
)

// ParseThreshold parses "< n", "<= n", "> n", ">= n", "a-b", "a:1 a b:1"
// and a bare "n". Anything after the leading expression (units, notes) is
// ignored. Descriptive text returns ok=false and never matches a value.
func ParseThreshold(expr string) (Range, bool) {
	if m := comparatorExpr.FindStringSubmatch(expr); m != nil {
		n := mustFloat(m[2])
		switch m[1] {
		case "<":
			return Range{Min: math.Inf(-1), Max: n}, true
		case "<=":
			return Range{Min: math.Inf(-1), Max: n, MaxInclusive: true}, true
		case ">":
			return Range{Min: n, Max: math.Inf(1)}, true
		default:
			return Range{Min: n, Max: math.Inf(1), MinInclusive: true}, true
		}
	}
	if m := ratioExpr.FindStringSubmatch(expr); m != nil {
		return closed(mustFloat(m[1]), mustFloat(m[2])), true
	}
	if m := intervalExpr.FindStringSubmatch(expr); m != nil {
		return closed(mustFloat(m[1]), mustFloat(m[2])), true
	}
	if m := pointExpr.FindStringSubmatch(expr); m != nil {
		n := mustFloat(m[1])
		return closed(n, n), true
	}
	return Range{}, false
}

func closed(a, b float64) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Min: a, Max: b, MinInclusive: true, MaxInclusive: true}
}

func mustFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if v < r.Min || (v == r.Min && !r.MinInclusive) {
		return false
	}
	if v > r.Max || (v == r.Max && !r.MaxInclusive) {
		return false
	}
	return true
}

// overlapsInterval reports whether two ranges share more than one point.
func (r Range) overlapsInterval(o Range) bool {
	lo := math.Max(r.Min, o.Min)
	hi := math.Min(r.Max, o.Max)
	return lo < hi
}

func (r Range) String() string {
	lo, hi := "(", ")"
	if r.MinInclusive {
		lo = "["
	}
	if r.MaxInclusive {
		hi = "]"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, r.Min, r.Max, hi)
}
