// Package selector parses the index selection grammar used by wtm remove:
// a single 1-based index ("2"), a hyphen range ("1-3"), a comma list
// ("1,2,3", where each part may itself be a range), or the literal "all".
package selector

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse resolves a selection string against a list of max entries and
// returns the selected zero-based indices, sorted and deduplicated.
// Range ends beyond max are clamped; indices out of range are dropped.
// A malformed part is an error.
func Parse(selection string, max int) ([]int, error) {
	selection = strings.ToLower(strings.TrimSpace(selection))
	if selection == "" {
		return nil, fmt.Errorf("empty selection")
	}

	if selection == "all" {
		all := make([]int, max)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	picked := make(map[int]bool)
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			from, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			to, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			if to > max {
				to = max
			}
			for i := from; i <= to; i++ {
				picked[i-1] = true
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", part)
		}
		picked[n-1] = true
	}

	var indices []int
	for i := range picked {
		if i >= 0 && i < max {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)

	if len(indices) == 0 {
		return nil, fmt.Errorf("selection %q matches nothing", selection)
	}
	return indices, nil
}
