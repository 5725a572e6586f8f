// Package registry maps color model names, as written in palette files and
// on the command line, to the ColorModel implementations that convert them.
//
// The registry is populated once at startup and validated before use. After
// that it is read-only and safe for concurrent lookups.
package registry
