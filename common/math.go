package common

// Overlaps reports whether two axis-aligned boxes given by their centres and
// sizes intersect. Touching edges do not count.
func Overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax-aw/2 < bx+bw/2 &&
		ax+aw/2 > bx-bw/2 &&
		ay-ah/2 < by+bh/2 &&
		ay+ah/2 > by-bh/2
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
