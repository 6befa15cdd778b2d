package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// nextNumber returns the next display number in the form PREFIX + 3-digit
// sequence (e.g. "INV004"), one past the highest existing number that uses
// the prefix. Numbers with a non-numeric tail are ignored.
func nextNumber(prefix string, existing []string) string {
	highest := 0
	for _, n := range existing {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimLeft(strings.TrimPrefix(n, prefix), "-"))
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
