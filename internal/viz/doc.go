// Package viz is the terminal front end of the playground.
//
// It runs a Bubble Tea program with mouse reporting enabled and draws the
// world on a braille [Canvas]:
//
//   - press the left button to spawn a box at the pointer
//   - drag to move it, release to drop it
//
// # Key Bindings
//
//	Esc   - Toggle bounding boxes (overlapping pairs in red)
//	Space - Pause/Resume simulation
//	R     - Remove all boxes
//	P     - Cycle physics presets
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
//
// The world is as large as the canvas: resizing the terminal resizes the
// bounds the boxes bounce inside.
package viz
