package game

import (
	"math"
	"strconv"
)

const (
	MinSnap = 1
	MaxSnap = 64
)

// ClampSnap keeps a snap (beat subdivisions) within what the editor supports.
func ClampSnap(snap int) int {
	if snap < MinSnap {
		return MinSnap
	}
	if snap > MaxSnap {
		return MaxSnap
	}
	return snap
}

// SnapLine is the fractional snap line a tick falls on, lines being
// resolution/snap ticks apart.
func SnapLine(tick float64, resolution, snap int) float64 {
	return tick * float64(ClampSnap(snap)) / float64(resolution)
}

// SnapTick is the tick nearest to a snap line. Each line is rounded on its
// own, so every snap-th line lands exactly on a beat.
func SnapTick(line, resolution, snap int) int {
	return int(math.Round(float64(line) * float64(resolution) / float64(ClampSnap(snap))))
}

// SnapName names a snap the way a musician would: 1 beat subdivision is a
// 4th note, 2 an 8th and so on.
func SnapName(snap int) string {
	return Ordinal(snap * 4)
}

func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// Subdivision is the smallest beat subdivision a timing falls on: 1 on a
// beat, 2 on an 8th, 3 on a 12th and so on.
func Subdivision(timing, resolution int) int {
	if resolution < 1 {
		return 1
	}
	a, b := timing%resolution, resolution
	if a < 0 {
		a += resolution
	}
	for a != 0 {
		a, b = b%a, a
	}
	return resolution / b
}
