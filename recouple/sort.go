package recouple

// SortShell sorts the interacting shells in place into canonical order —
// ascending chain position, stable for equal positions — and returns the
// applied permutation together with its sign.
//
// perm[i] names the original position of the element now at i, so applying
// perm to the original list reproduces the sorted one. sign is +1 for an
// even permutation and −1 for an odd one: the fermion transposition parity
// the drivers fold into their phase.
//
// Involution property: sorting an already-sorted list returns the identity
// permutation with sign +1, and applying a permutation followed by its
// inverse multiplies signs to +1.
//
// Complexity: O(n²) insertion sort; n never exceeds MaxInteract.
func SortShell(s []InteractShell) (perm []int, sign int) {
	perm = make([]int, len(s))
	for i := range perm {
		perm[i] = i
	}
	sign = 1

	// Insertion sort, counting adjacent transpositions. Stability keeps
	// equal-position legs (coincident shells) in their tensor-factor order.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1].Index > s[j].Index; j-- {
			s[j-1], s[j] = s[j], s[j-1]
			perm[j-1], perm[j] = perm[j], perm[j-1]
			sign = -sign
		}
	}

	return perm, sign
}

// PermSign returns the parity sign of an arbitrary permutation, +1 for
// even and −1 for odd. Used to re-derive the phase of an inverse
// permutation without re-sorting.
func PermSign(perm []int) int {
	seen := make([]bool, len(perm))
	sign := 1
	for i := range perm {
		if seen[i] {
			continue
		}
		// Walk the cycle containing i; a cycle of length L contributes
		// (−1)^(L−1).
		l := 0
		for j := i; !seen[j]; j = perm[j] {
			seen[j] = true
			l++
		}
		if l%2 == 0 {
			sign = -sign
		}
	}

	return sign
}

// isPresent reports whether v occurs in m.
func isPresent(v int, m []int) bool {
	for _, x := range m {
		if x == v {
			return true
		}
	}

	return false
}
