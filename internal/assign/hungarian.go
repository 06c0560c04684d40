// Package assign solves the assignment problem: pick at most one column per
// row so that the summed weight is maximal.
package assign

import (
	"math"
	"sort"
)

// Pair is one assigned (row, column) cell
type Pair struct {
	Row int
	Col int
}

// Maximize returns the assignment of rows to columns with the largest total
// weight, sorted by row. The matrix may be rectangular; the result holds
// min(rows, cols) pairs. Rows of unequal length are padded with zero weight.
func Maximize(weights [][]float64) []Pair {
	rows := len(weights)
	cols := 0
	for _, r := range weights {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if rows == 0 || cols == 0 {
		return nil
	}

	n := rows
	if cols > n {
		n = cols
	}

	maxW := 0.0
	for _, r := range weights {
		for _, w := range r {
			if w > maxW {
				maxW = w
			}
		}
	}

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			w := 0.0
			if i < rows && j < len(weights[i]) {
				w = weights[i][j]
			}
			cost[i][j] = maxW - w
		}
	}

	colOfRow := minimize(cost)

	pairs := make([]Pair, 0, n)
	for i := 0; i < rows; i++ {
		j := colOfRow[i]
		if j < cols {
			pairs = append(pairs, Pair{Row: i, Col: j})
		}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Row < pairs[b].Row })
	return pairs
}

// minimize runs the O(n^3) potentials form of the Hungarian algorithm over a
// square cost matrix and returns the column assigned to each row
func minimize(cost [][]float64) []int {
	n := len(cost)
	inf := math.Inf(1)

	// 1-based; index 0 is the virtual start column
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	rowOfCol := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		rowOfCol[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := rowOfCol[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[rowOfCol[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if rowOfCol[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			rowOfCol[j0] = rowOfCol[j1]
			j0 = j1
		}
	}

	colOfRow := make([]int, n)
	for j := 1; j <= n; j++ {
		if rowOfCol[j] > 0 {
			colOfRow[rowOfCol[j]-1] = j - 1
		}
	}
	return colOfRow
}

// Total sums the weights of an assignment
func Total(weights [][]float64, pairs []Pair) float64 {
	total := 0.0
	for _, p := range pairs {
		total += weights[p.Row][p.Col]
	}
	return total
}
