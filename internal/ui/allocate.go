package ui

import (
	"fmt"
	"math"
	"sort"
)

// weightTolerance absorbs float noise when weights are compared to the total,
// so 0.1+0.2 is not rejected against 0.3.
const weightTolerance = 1e-9

// Allocation is the column count for each weighted segment.
//
// Columns[i] is floor(budget*weight[i]/total), plus one for the segments with
// the largest fractional remainders when filling. Rest is whatever the
// weights leave unclaimed, so sum(Columns)+Rest == budget always holds, and
// Rest is zero when the weights cover the total and fill is on.
type Allocation struct {
	Columns []int
	Rest    int
}

// Used returns sum(Columns).
func (a Allocation) Used() int {
	n := 0
	for _, c := range a.Columns {
		n += c
	}
	return n
}

// Allocate splits budget columns among weights in proportion to weight/total
// using the largest-remainder method.
//
// With fill off every segment gets its floor and the shortfall is left in
// Rest. With fill on the shortfall budget-sum(floors) is handed out one
// column at a time in order of descending remainder, at most one per segment;
// ties go to the earlier segment. Whatever is left after that stays in Rest.
func Allocate(budget int, weights []float64, total float64, fill bool) (Allocation, error) {
	if budget < 0 {
		return Allocation{}, fmt.Errorf("%w: %d columns", ErrInvalidBudget, budget)
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return Allocation{}, fmt.Errorf("%w: total must be positive, got %v", ErrInvalidBudget, total)
	}

	var sum float64
	for i, w := range weights {
		if !(w >= 0) || math.IsInf(w, 0) {
			return Allocation{}, fmt.Errorf("%w: weight %d is %v", ErrInvalidBudget, i, w)
		}
		sum += w
	}
	if sum-total > total*weightTolerance {
		return Allocation{}, fmt.Errorf("%w: %v of %v", ErrOverBudget, sum, total)
	}

	cols := make([]int, len(weights))
	remainders := make([]float64, len(weights))
	base := 0
	for i, w := range weights {
		// multiply before dividing so integral shares stay exact
		exact := float64(budget) * w / total
		whole := math.Floor(exact)
		cols[i] = int(whole)
		remainders[i] = exact - whole
		base += cols[i]
	}

	if fill && len(weights) > 0 {
		deficit := min(budget-base, len(weights))

		order := make([]int, len(weights))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return remainders[order[a]] > remainders[order[b]]
		})

		for k := 0; k < deficit; k++ {
			cols[order[k]]++
		}
	}

	alloc := Allocation{Columns: cols}
	alloc.Rest = budget - alloc.Used()
	return alloc, nil
}
