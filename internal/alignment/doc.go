// Package alignment turns matched text back into audio time ranges.
//
// An Aligner force-aligns a transcript against its recording and returns
// per-word timings. WhisperX is the production Aligner: it extracts a mono
// 16 kHz WAV with ffmpeg and runs WhisperX's wav2vec2 alignment through uvx.
// FindSpan, QuoteInterval, AlignMatches, and SequenceIntervals map segment
// text onto those word timings for both sides of a mashup: the quote clip
// and the song's vocal track.
package alignment
