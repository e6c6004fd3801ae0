// Package neighbor provides the D8 neighbour geometry and MFD nibble
// packing shared by every traversal in this module: the eight
// clockwise-from-east offsets, the reverse-direction table, diagonal
// detection and cost, and helpers for reading/writing the eight 4-bit
// weights packed into an MFD direction cell.
//
// What:
//
//   - Offsets: the 8 (dx, dy) pairs in D8 direction order.
//   - Reverse: the direction that points back the way a given
//     direction came from.
//   - IsDiagonal / DiagCost: diagonal detection and its extra length.
//   - Nibble pack/unpack for the 32-bit MFD direction cell.
//
// Why:
//
//   - Every algorithmic component (pit filler, flow-direction engines,
//     accumulator, distance-to-channel, watershed delineator) shares
//     this one geometry and must scan neighbours in the same order for
//     tie-breaking to be deterministic; centralizing it here is the
//     only way to guarantee that.
//
// Grounded on the gridgraph package (deleted once its
// offset-table idea was folded in here): gridgraph precomputes
// Conn4/Conn8 neighbour offsets for a 2D grid; this package fixes the
// D8 table's order and adds the reverse-direction and diagonal-cost
// lookups the tie-break and slope-normalisation rules require.
package neighbor
