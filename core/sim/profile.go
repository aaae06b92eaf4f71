package sim

// ExpandSpeedProfile stretches a short user-supplied speed array to targetLen
// per-tick entries by repeating each element an equal number of times; any
// remainder is padded with the final element. A single-element profile thus
// becomes a constant speed for the whole grid.
func ExpandSpeedProfile(speeds []float64, targetLen int) []float64 {
	out := make([]float64, 0, targetLen)
	if len(speeds) == 0 || targetLen <= 0 {
		return make([]float64, targetLen)
	}
	repeat := targetLen / len(speeds)
	for _, s := range speeds {
		for r := 0; r < repeat; r++ {
			out = append(out, s)
		}
	}
	for len(out) < targetLen {
		out = append(out, speeds[len(speeds)-1])
	}
	return out[:targetLen]
}
