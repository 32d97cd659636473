// Package automation drives worlds without a user: scripted pointer
// scenarios loaded from YAML, and sweeps of a single tuning value over
// a seeded drop.
//
// A scenario file looks like:
//
//	name: two boxes
//	preset: bouncy
//	steps:
//	  - {action: spawn, x: 100, y: 50}
//	  - {action: drag, x: 140, y: 60}
//	  - {action: release}
//	  - {action: wait, ticks: 120}
package automation
