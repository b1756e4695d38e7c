// Package matcher finds the longest run of target lyrics that can be spoken
// entirely by quote fragments, using as few fragments as possible.
//
// The engine is a pure, in-memory computation that works in five passes:
//
//   - Normalize: the target and every corpus entry become token sequences
//     (see textutil.Normalize).
//   - FindCandidates: for each target position and entry, the longest literal
//     run starting at that position that also appears inside the entry.
//   - BuildChains: a backward dynamic program over positions n..0 recording,
//     for each start, the furthest gap-free reach and the fewest segments
//     needed to get there.
//   - SelectWindow: the start position with the largest coverage, ties going
//     to fewer segments and then to the leftmost start.
//   - Assemble: the winning chain as ordered (entry, segment) pairs.
//
// Equally good alternatives are resolved by a TieBreaker. Candidates and
// entries are presented to the passes in the order the TieBreaker arranges
// them and the first option encountered wins, so a fixed TieBreaker makes the
// output reproducible. Every resolution is equally valid; none carries
// meaning beyond reproducibility.
package matcher
