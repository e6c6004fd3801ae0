package neighbor

import "math"

// Direction indices, clockwise starting at east.
const (
	East      = 0
	Northeast = 1
	North     = 2
	Northwest = 3
	West      = 4
	Southwest = 5
	South     = 6
	Southeast = 7
)

// Offset is a (dx, dy) displacement to one of the 8 neighbours.
type Offset struct {
	DX, DY int32
}

// Offsets holds the eight D8 neighbour displacements in direction
// order: 0=E, 1=NE, 2=N, 3=NW, 4=W, 5=SW, 6=S, 7=SE.
var Offsets = [8]Offset{
	{DX: 1, DY: 0},   // 0 E
	{DX: 1, DY: -1},  // 1 NE
	{DX: 0, DY: -1},  // 2 N
	{DX: -1, DY: -1}, // 3 NW
	{DX: -1, DY: 0},  // 4 W
	{DX: -1, DY: 1},  // 5 SW
	{DX: 0, DY: 1},   // 6 S
	{DX: 1, DY: 1},   // 7 SE
}

// Reverse[i] is the direction pointing back toward where direction i
// came from.
var Reverse = [8]int{4, 5, 6, 7, 0, 1, 2, 3}

// DiagCost is the length of a diagonal step; InvDiagCost is its
// reciprocal, used to normalise diagonal slope against cardinal slope.
var (
	DiagCost    = math.Sqrt2
	InvDiagCost = 1 / math.Sqrt2
)

// IsDiagonal reports whether direction i is a diagonal (odd index:
// diagonals are the directions with the low bit set).
func IsDiagonal(i int) bool { return i&1 != 0 }

// StepCost returns the geometric length of a step in direction i: 1
// for cardinal, √2 for diagonal.
func StepCost(i int) float64 {
	if IsDiagonal(i) {
		return DiagCost
	}
	return 1
}

// Coord is an integer pixel coordinate, used as a BFS queue element
// and as a map key for dedup sets.
type Coord struct {
	X, Y int32
}

// Step returns the coordinate one step from (x, y) in direction i.
func Step(x, y int32, i int) Coord {
	o := Offsets[i]
	return Coord{X: x + o.DX, Y: y + o.DY}
}
