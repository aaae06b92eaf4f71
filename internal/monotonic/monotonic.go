// Package monotonic implements the forward-only nearest-segment cursor used
// to align a non-decreasing cumulative-distance series with an ordered set of
// path segments. Both the route and weather models use it, so the total cost
// of aligning Q queries against N segments stays O(N+Q).
package monotonic

// Midpoints returns, for each adjacent segment pair, the cumulative distance
// of the boundary between them. It builds a signed cumulative distance array,
// alternating sign per segment, so that the absolute halved differences of
// adjacent entries are exactly the segment midpoints.
func Midpoints(distances []float64) []float64 {
	if len(distances) < 2 {
		return nil
	}
	cum := make([]float64, len(distances))
	var total float64
	for i, d := range distances {
		total += d
		cum[i] = total
		if i%2 == 0 {
			cum[i] = -cum[i]
		}
	}
	mids := make([]float64, len(cum)-1)
	for i := range mids {
		m := (cum[i+1] - cum[i]) / 2
		if m < 0 {
			m = -m
		}
		mids[i] = m
	}
	return mids
}

// ClosestIndices maps each entry of a non-decreasing query sequence to the
// index of the segment whose midpoint boundary it falls under. The cursor
// never moves backward and saturates at len(midpoints), so queries beyond the
// final boundary stay pinned to the last segment.
func ClosestIndices(midpoints, queries []float64) []int {
	result := make([]int, len(queries))
	cursor := 0
	for i, q := range queries {
		for cursor < len(midpoints) && q > midpoints[cursor] {
			cursor++
		}
		result[i] = cursor
	}
	return result
}
