package flowaccum

import (
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// NoDataAccum is the nodata sentinel for a flow accumulation raster.
const NoDataAccum = -1.0

// frame is one resume record of the explicit upstream-traversal
// stack: (x, y, next_neighbor, running).
type frame struct {
	X, Y    int32
	Next    int8
	Running float64
}

// upstreamFunc reports, for neighbour direction i of (x, y), whether
// that neighbour flows into (x, y), and if so the fraction of its
// outflow that lands there.
type upstreamFunc func(x, y int32, i int) (flows bool, frac float64, err error)

// weightFunc returns the per-pixel weight contributed at (x, y)
// (defaults to 1 when the caller supplied no weight raster).
type weightFunc func(x, y int32) (float64, error)

// run drains one root's upstream closure with an explicit stack,
// grounded on flow/dinic.go's dfsDinicPush
// preemption-resumption idiom — there expressed as recursion plus an
// `iter` resume map; here as an explicit stack of frame so traversal
// depth is bounded only by heap memory, not the goroutine stack —
// depths scale with raster size, so recursion is off the table.
func run(accum *rasterio.ManagedRaster, weight weightFunc, flowsInto upstreamFunc, rootX, rootY int32) error {
	w0, err := weight(rootX, rootY)
	if err != nil {
		return err
	}
	stack := []frame{{X: rootX, Y: rootY, Next: 0, Running: w0}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		preempted := false
		for i := int(top.Next); i < 8; i++ {
			flows, frac, err := flowsInto(top.X, top.Y, i)
			if err != nil {
				return err
			}
			if !flows {
				continue
			}
			nb := neighbor.Step(top.X, top.Y, i)
			na, err := accum.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if na != NoDataAccum {
				top.Running += na * frac
				continue
			}
			top.Next = int8(i)
			wn, err := weight(nb.X, nb.Y)
			if err != nil {
				return err
			}
			stack = append(stack, frame{X: nb.X, Y: nb.Y, Next: 0, Running: wn})
			preempted = true
			break
		}
		if preempted {
			continue
		}
		if err := accum.Set(int(top.X), int(top.Y), top.Running); err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}
