// Package rings renders board rings into classed primitive trees.
//
// Each ring kind has its own renderer: rule rings engrave a dual-reading
// scale, azimuthal rings cut one arc-shaped slider channel per network
// unit, and radial rings cut a grid of straight radial channels over
// concentric guide circles, one channel per weight.
//
// [Render] dispatches on the ring kind and panics if the ring was never
// assigned a layout context: rendering with guessed geometry would
// silently produce an uncuttable drawing, so a missing context is treated
// as a programming error rather than a recoverable condition.
package rings
