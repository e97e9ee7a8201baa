// Package affine maps values linearly between two one dimensional domains.
package affine

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var ErrDegenerate = errors.New("affine transform needs two distinct domain endpoints")

// Transform maps [Low, High] onto [Start, End]. Inputs outside the domain are
// extrapolated unless ClampedTransform is used.
type Transform[T constraints.Float] struct {
	low, high  T
	start, end T
}

func New[T constraints.Float](low, high, start, end T) (Transform[T], error) {
	if low == high {
		return Transform[T]{}, errors.Wrapf(ErrDegenerate, "domain [%v, %v]", low, high)
	}
	return Transform[T]{low: low, high: high, start: start, end: end}, nil
}

// Must is New for domains that are known to be valid. It panics otherwise.
func Must[T constraints.Float](low, high, start, end T) Transform[T] {
	t, err := New(low, high, start, end)
	if nil != err {
		panic(err)
	}
	return t
}

func (t Transform[T]) Transform(x T) T {
	return t.start + (x-t.low)*(t.end-t.start)/(t.high-t.low)
}

func (t Transform[T]) ClampedTransform(x T) T {
	lo, hi := t.low, t.high
	if lo > hi {
		lo, hi = hi, lo
	}
	if x < lo {
		x = lo
	} else if x > hi {
		x = hi
	}
	return t.Transform(x)
}

// BackwardsTransform is the inverse of Transform. A constant range has no
// inverse and maps everything back to the low end of the domain.
func (t Transform[T]) BackwardsTransform(y T) T {
	if t.start == t.end {
		return t.low
	}
	return t.low + (y-t.start)*(t.high-t.low)/(t.end-t.start)
}
