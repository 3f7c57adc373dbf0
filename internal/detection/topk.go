package detection

import (
	"container/heap"
	"sort"
)

// scored pairs an item with the value it is ranked by.
type scored[T any] struct {
	item  T
	score float64
}

// minHeap keeps the lowest score at the root so the weakest of the current
// top K can be replaced in O(log K).
type minHeap[T any] []scored[T]

func (h minHeap[T]) Len() int           { return len(h) }
func (h minHeap[T]) Less(i, j int) bool { return h[i].score < h[j].score }
func (h minHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap[T]) Push(x any) {
	*h = append(*h, x.(scored[T]))
}

func (h *minHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topK returns the k items with the largest score, largest first, without
// sorting the whole input. The order among equal scores is unspecified.
func topK[T any](items []T, k int, score func(T) float64) []T {
	if k <= 0 || len(items) == 0 {
		return []T{}
	}

	h := make(minHeap[T], 0, k)
	for _, it := range items {
		s := score(it)
		if h.Len() < k {
			heap.Push(&h, scored[T]{item: it, score: s})
			continue
		}
		if s > h[0].score {
			h[0] = scored[T]{item: it, score: s}
			heap.Fix(&h, 0)
		}
	}

	sort.SliceStable(h, func(i, j int) bool { return h[i].score > h[j].score })
	out := make([]T, len(h))
	for i, s := range h {
		out[i] = s.item
	}
	return out
}
