package physics

import (
	"iter"
	"sync"
)

// Pair indexes two bodies of a collection, I < J.
type Pair struct {
	I, J int
}

// Intersects is the broad-phase AABB test. Touching edges do not count.
func Intersects(a, b Body) bool {
	return BoxOf(a).Overlaps(BoxOf(b))
}

// AllPairs yields every unordered index pair of a collection of n bodies.
// The sequence can be ranged over any number of times.
func AllPairs(n int) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !yield(Pair{I: i, J: j}) {
					return
				}
			}
		}
	}
}

// DetectPairs returns the overlapping pairs of bodies in (i, j) order.
func DetectPairs(bodies []Body) []Pair {
	boxes := snapshot(bodies)
	var pairs []Pair
	for p := range AllPairs(len(boxes)) {
		if boxes[p.I].Overlaps(boxes[p.J]) {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// DetectPairsParallel splits the outer loop across workers. Boxes are read
// once up front, so bodies must not be mutated until it returns. The result
// is identical to DetectPairs.
func DetectPairsParallel(bodies []Body, workers int) []Pair {
	if workers <= 1 || len(bodies) < 2 {
		return DetectPairs(bodies)
	}
	boxes := snapshot(bodies)
	rows := make([][]Pair, len(boxes))

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				for j := i + 1; j < len(boxes); j++ {
					if boxes[i].Overlaps(boxes[j]) {
						rows[i] = append(rows[i], Pair{I: i, J: j})
					}
				}
			}
		}()
	}
	for i := range boxes {
		next <- i
	}
	close(next)
	wg.Wait()

	var pairs []Pair
	for _, row := range rows {
		pairs = append(pairs, row...)
	}
	return pairs
}

func snapshot(bodies []Body) []Box {
	boxes := make([]Box, len(bodies))
	for i, b := range bodies {
		boxes[i] = BoxOf(b)
	}
	return boxes
}
