// Package contour extracts iso-lines from images with marching squares.
//
// Extract walks every 2×2 block of samples of a fastmarch.Grid with one
// slice and returns the line segments where the bilinear field crosses a
// level. Applied at level 0 to the output of fastmarch.Solve it recovers the
// interface the distance field was built from.
//
// Coordinates are in cells: Point.X runs along columns and Point.Y along rows,
// with sample (i, j) at (X=j, Y=i). Segments are unordered pieces; joining them
// into polylines is left to the caller.
package contour
