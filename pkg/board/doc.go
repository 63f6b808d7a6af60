// Package board models a ringforge apparatus: the ordered set of
// concentric annular rings that represent a feed-forward network, and the
// allocator that assigns each ring its radial position.
//
// # Ring kinds
//
// A board is built from three ring kinds, expressed as a closed sum type:
//
//   - [Rule]: a fixed-width annular scale (log multiplier dial, ReLU
//     clamp dial). Does not represent network units.
//   - [Azimuthal]: one radial slider per scalar unit of a network layer,
//     arranged around the circumference.
//   - [Radial]: a weight matrix as Groups angular groups of
//     SlidersPerGroup straight radial sliders. Its width is elastic: the
//     allocator divides whatever radial space is left after the
//     fixed-width rings among the radial rings.
//
// # Layout
//
// [Layout] walks the ring list outermost first, assigning each ring a
// [Context] (outer radius, width, layer index) subject to the apparatus
// diameter, a reserved center plate, and fixed inter-ring padding. It
// also places the mechanical extras: a bottom rotating channel between
// consecutive rule rings (the captive multiplier rotor rides in it) and
// the fastener holes on the center plate.
//
// Layout fails fast with a LAYOUT_OVERFLOW error when the fixed ring
// widths alone exceed the available radius; no rendering is attempted,
// since no meaningful fallback width exists.
package board
