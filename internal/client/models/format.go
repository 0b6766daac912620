package models

import (
	"fmt"
	"strings"
)

// Row is a record that can be rendered as a table row.
type Row interface {
	TableHeader() []string
	TableRow() []string
}

func ActiveLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Suspended"
}

// Money formats an amount in naira.
func Money(v float64) string {
	return fmt.Sprintf("₦%.2f", v)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
