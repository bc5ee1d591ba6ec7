// Package prism implements a physics-based face-liveness detection
// engine: it consumes a stream of camera frames alongside a synchronized
// colored-screen stimulus and decides, per frame, whether the observed
// face is a live human or a spoof (printed photo, screen replay, or
// synthetic still).
//
// Engine is the single entry point. Construct one with NewEngine, feed it
// frames in non-decreasing timestamp order via ProcessFrame, and call
// Reset between sessions. See the rppg, spoof, temporal, and fusion
// subpackages for the individual signal analyzers the engine composes.
package prism
