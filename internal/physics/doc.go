// Package physics is the 2D rigid-body core: vectors, bodies, integration,
// wall handling and broad-phase pair detection.
//
// Bodies implement [Body]. The only shape today is [Rectangle]:
//
//	r, err := physics.NewRectangle(50, 50, 10, 10, 10)
//	r.Acc.Y = physics.DefaultGravity
//	r.Update(dt)
//	physics.ResolveBoundary(r, physics.NewBounds(800, 450), physics.DefaultTuning())
//
// Pair detection reports overlaps only. Nothing in this package separates
// or pushes apart two overlapping bodies.
//
// # Thread Safety
//
// Bodies are plain values owned by a single driver. [DetectPairsParallel]
// only reads a snapshot of the bounding boxes taken before it fans out.
package physics
