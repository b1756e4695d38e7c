// Package mashup turns song lyrics into a mashup plan: the corpus quotes that
// voice the longest coverable stretch of the lyrics, where each quote segment
// is spoken in its own audio, and where the matching lyric line sits in the
// song's vocal track.
//
// The Planner ties the corpus provider, the matching engine, and the
// alignment service together. Its Plan is the handoff to the audio
// compositor, which stretches each quote segment to its lyric line and
// overlays it on the accompaniment inside the padded window.
package mashup
