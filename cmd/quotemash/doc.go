// Package main hosts the quotemash CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, opens the quote corpus,
// and hands lyrics to the mashup planner. Matching results print as tables or
// JSON; plans always print as JSON for the audio compositor. Corpus and
// configuration maintenance live under their own subcommands.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it here through a command or flag.
package main
