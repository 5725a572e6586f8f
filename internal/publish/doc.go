// Package publish pushes rendered palettes to a live viewer over socket.io.
package publish
