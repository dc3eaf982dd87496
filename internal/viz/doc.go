// Package viz renders the wave simulation live in the terminal.
//
// The view is a Bubble Tea program: a Braille [Canvas] draws the water
// surface profile while a side panel tracks time, peak height, and the
// discrete energy of the scheme. The c and decay parameters can be
// tuned while the wave runs, and a bounded history buffer allows
// scrubbing back through recent frames.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset wave
//	B     - Toggle boundary policy
//	Tab   - Select tunable parameter
//	Up/Dn - Adjust selected parameter
//	[ ]   - Replay (rewind/forward)
//	?     - Show help overlay
package viz
