// Package report formats rendered palettes for output.
package report
