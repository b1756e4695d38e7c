// Package textutil provides the text normalization shared by the matcher and
// the alignment adapter, plus filename sanitization helpers.
//
// Normalize is the single tokenizer for every text the system compares:
// target lyrics, corpus quotes, and forced-alignment word lists all pass
// through it so token equality means the same thing everywhere. Tokens are
// lowercase runs of ASCII letters, digits, and apostrophes. MatchKey folds a
// token into the form used for equality checks, which ignores apostrophes so
// "it's" and "its" compare equal.
package textutil
