// Package export writes recorded frames and trajectories as SVG.
package export
