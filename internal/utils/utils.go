package utils

import (
	"math"
)

// GetSortedPositionValue returns the value that would sit at pos if arr were
// sorted. arr is partially reordered.
func GetSortedPositionValue(arr []float64, pos int) float64 {
	if pos < 0 || pos >= len(arr) {
		return math.NaN()
	}

	l := 0
	r := len(arr) - 1
	for l < r {
		idx := Partition(arr, l, r)
		if idx == pos {
			break
		} else if idx < pos {
			l = idx + 1
		} else {
			r = idx - 1
		}
	}

	return arr[pos]
}

// Partition places the middle element of arr[l:r+1] at its sorted position and
// returns that position.
func Partition(arr []float64, l, r int) int {
	slice := arr[l : r+1]

	if len(slice) == 0 {
		return 0
	}
	m := len(slice) / 2
	slice[0], slice[m] = slice[m], slice[0]
	pivot := slice[0]

	i := 0
	j := len(slice) - 1

	for i < j {
		for i < j && slice[j] > pivot {
			j--
		}
		slice[i] = slice[j]

		for i < j && slice[i] <= pivot {
			i++
		}
		slice[j] = slice[i]
	}
	slice[i] = pivot

	return l + i
}
