package pitfill

// pixelItem is a pixel's priority-flood heap record, ordered primarily
// by Value ascending, ties broken by Tiebreak (a block index)
// ascending.
type pixelItem struct {
	Value    float64
	X, Y     int32
	Tiebreak int64
}

// pixelHeap implements container/heap.Interface over []*pixelItem,
// ordered by (Value, Tiebreak) ascending. Grounded on
// graph/algorithms/dijkstra.go's nodePQ, which wraps container/heap over
// *nodeItem{id string, dist int64} ordered by dist alone; this adds a
// deterministic tiebreak independent of any vertex-ID-style key.
type pixelHeap []*pixelItem

func (h pixelHeap) Len() int { return len(h) }

func (h pixelHeap) Less(i, j int) bool {
	if h[i].Value != h[j].Value {
		return h[i].Value < h[j].Value
	}
	return h[i].Tiebreak < h[j].Tiebreak
}

func (h pixelHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pixelHeap) Push(x any) { *h = append(*h, x.(*pixelItem)) }

func (h *pixelHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}
