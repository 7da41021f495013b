// Package sequence allocates free sequence numbers for numbered file sets.
package sequence

// Allocate returns the count smallest positive integers that are absent from
// used, in ascending order. The scan starts at 1 and walks upward, so repeated
// batches fill holes in an existing sequence before extending past its end.
//
// The result is strictly ascending, disjoint from used, and always exactly
// count elements long. A count of zero (or less) yields an empty slice.
func Allocate(used map[int]struct{}, count int) []int {
	if count <= 0 {
		return []int{}
	}

	numbers := make([]int, 0, count)
	for candidate := 1; len(numbers) < count; candidate++ {
		if _, busy := used[candidate]; busy {
			continue
		}
		numbers = append(numbers, candidate)
	}
	return numbers
}
