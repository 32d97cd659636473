// Package analysis inspects recorded runs.
//
//   - [PhasePortrait]: two frame fields of one body, e.g. y against vy
//   - [Bounces]: floor turnarounds of one body and the speed it left with
//   - [SettleTime]: when every body came to rest
//   - [DominantFrequency]: bounce rate from the power spectrum of a series
//
// # Restitution
//
// Successive bounce speeds of a box falling straight down shrink by the
// restitution coefficient:
//
//	b := analysis.Bounces(result, 0)
//	r := b[1].Speed / b[0].Speed // ≈ 0.3 with the default tuning
package analysis
