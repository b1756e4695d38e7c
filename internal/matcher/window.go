package matcher

// SelectWindow scans every start position and returns the one whose chain
// covers the most tokens, preferring fewer segments on equal coverage and the
// leftmost start after that. It reports false when no position has coverage.
func SelectWindow(chains Chains) (int, bool) {
	best, bestCoverage, bestSegments := -1, 0, 0
	for i := 0; i < len(chains)-1; i++ {
		coverage := chains.Coverage(i)
		if coverage == 0 {
			continue
		}
		segments := chains[i].Segments
		if coverage > bestCoverage || (coverage == bestCoverage && segments < bestSegments) {
			best, bestCoverage, bestSegments = i, coverage, segments
		}
	}
	return best, best >= 0
}
