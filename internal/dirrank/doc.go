// Package dirrank measures the immediate subdirectories of a root directory.
//
// It walks each subdirectory using fastwalk, sums the sizes of the regular
// files below it without following symbolic links, and ranks the
// subdirectories by size with a stable tie-break.
package dirrank
