// Package deps checks that the external binaries used for alignment are
// installed and resolvable on PATH.
package deps
