package domain

import "slices"

// Reconcile repairs a manual order after the live note set changed.
//
// Identifiers of current that are still live keep their relative order; dangling ones are
// dropped. Live identifiers missing from current are appended in live (arrival) order. The
// result is a permutation of live.
func Reconcile(live []string, current []string) []string {
	if len(live) == 0 {
		return []string{}
	}

	alive := make(map[string]bool, len(live))
	for _, id := range live {
		alive[id] = true
	}

	out := make([]string, 0, len(live))
	seen := make(map[string]bool, len(live))
	for _, id := range current {
		if alive[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range live {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Move moves source to the index target occupies in order.
//
// Items between the old and the new position shift by one. It returns a new slice and true,
// or order unchanged and false when either identifier is missing or they are equal.
func Move(order []string, source, target string) ([]string, bool) {
	from := slices.Index(order, source)
	to := slices.Index(order, target)
	if from == -1 || to == -1 || from == to {
		return order, false
	}

	out := slices.Clone(order)
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, source)
	return out, true
}
