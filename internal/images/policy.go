// Package images implements the image transforms: the dimension
// alignment policy, in-place resizing, and threshold-gated compression.
package images

// DefaultMaxDimension caps either side at 4K so textures stay inside
// common GPU limits.
const DefaultMaxDimension = 3840

// MinDimension is the smallest side the policy will produce. Block
// compressed texture formats need at least one 4x4 block.
const MinDimension = 4

// roundToMultipleOf4 rounds v to the nearest multiple of 4. Exact
// halves (v = 4q+2) go to the even multiple, matching round-half-even.
func roundToMultipleOf4(v int) int {
	q, r := v/4, v%4
	switch {
	case r > 2:
		q++
	case r == 2 && q%2 == 1:
		q++
	}
	return q * 4
}

// TargetDimensions computes the aligned dimensions for a w x h image:
// scale both sides by the same factor when the larger one exceeds max,
// round each side to the nearest multiple of 4, then back off by 4
// while a side still exceeds max. Both results are clamped to at least
// MinDimension; the aspect-ratio drift the rounding introduces at small
// sizes is accepted.
func TargetDimensions(w, h, max int) (int, int) {
	if m := maxInt(w, h); m > max {
		scale := float64(max) / float64(m)
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}

	nw := roundToMultipleOf4(w)
	nh := roundToMultipleOf4(h)

	// Rounding up can push a side back over the cap.
	for maxInt(nw, nh) > max {
		if nw > max {
			nw -= 4
		}
		if nh > max {
			nh -= 4
		}
	}

	if nw < MinDimension {
		nw = MinDimension
	}
	if nh < MinDimension {
		nh = MinDimension
	}
	return nw, nh
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
