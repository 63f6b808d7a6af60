// Package render defines the primitive tree that ring renderers produce
// and serializes it to SVG.
//
// # Architecture
//
// Rendering is split in two:
//
//  1. Ring renderers (package render/rings) turn a ring descriptor plus
//     its assigned geometry into a tree of graphical primitives (lines,
//     arcs, circles, text, groups), each tagged with fabrication-layer
//     classes such as "top full" or "bottom slider".
//  2. [Document] flattens one shared tree into final SVG markup. A layer
//     filter appends display:none rules for every cut class that was not
//     requested, which is how one tree yields one file per CNC pass.
//
// Filtering by CSS class instead of generating N separate trees keeps all
// N outputs geometrically consistent by construction: the cutter sees the
// same coordinates the preview does.
//
// # Coordinate system
//
// The board is drawn around the origin. Angles are degrees, measured
// clockwise from 12 o'clock, matching how the physical dial is read.
package render
