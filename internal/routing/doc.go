// Package routing derives the geometry of every connection on the canvas.
//
// # Overview
//
// Rendering a connection is a pure pipeline:
//
//	symbol positions ──► ResolveEndpoints ──► SynthesizePath ──► []float64
//	(+ optional ports)      (anchors)          (style, waypoints)   flat x,y
//
// Nothing in the pipeline holds state. The same inputs always produce the same
// output slice contents, so the host may call it once per animation frame for
// every connection, or use Cache to skip connections whose inputs did not
// change since the previous frame.
//
// # Anchors
//
// A port, when the connection names one that exists on the symbol, is
// authoritative: the anchor is the symbol position plus the port offset. For
// every other endpoint the dominant-axis heuristic applies (see
// geom.FacingSides): the two anchors sit at the midpoints of the edges that
// face each other, left/right when the horizontal center offset strictly
// dominates and top/bottom otherwise. A dangling port id falls back to the
// heuristic for that endpoint alone.
//
// # Paths
//
//	straight, no waypoints     x1,y1  x2,y2
//	straight, waypoints        x1,y1  w1 … wn  x2,y2
//	orthogonal, no waypoints   x1,y1  x1,my  x2,my  x2,y2   (my = y1+(y2-y1)/2)
//	orthogonal, waypoints      x1,y1  w1 … wn  x2,y2
//
// Explicit waypoints replace the synthesized corners of an orthogonal route.
// There is no obstacle avoidance; the midpoint rule is kept verbatim so
// existing diagrams render identically.
//
// # Layers
//
// PartitionLayers splits rendered connections into layer2 and layer3 by the
// backing record's layer tag. Untagged connections are layer3. The partition
// is recomputed on each call and never cached on its own.
//
// # Error Handling
//
// The package never returns errors. Missing symbols omit the connection from
// RenderConnections; missing ports fall back to automatic anchors; coincident
// symbols produce a zero-length path rather than NaN.
package routing
