package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// tokenRE splits a name into alternating digit and non-digit runs.
var tokenRE = regexp.MustCompile(`(\d+|\D+)`)

func numToken(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	return n, err == nil
}

// NaturalSortLess compares two strings for natural sorting order.
// Digit runs compare numerically ("v2" before "v10") and letters compare
// case-insensitively, so "Vol 2.cbz" sorts ahead of "vol 10.cbz". Where
// one side has a number and the other text, the number sorts first.
func NaturalSortLess(s1, s2 string) bool {
	t1 := tokenRE.FindAllString(s1, -1)
	t2 := tokenRE.FindAllString(s2, -1)

	for i := 0; i < len(t1) && i < len(t2); i++ {
		n1, num1 := numToken(t1[i])
		n2, num2 := numToken(t2[i])

		switch {
		case num1 && num2:
			if n1 != n2 {
				return n1 < n2
			}
		case num1 != num2:
			return num1
		default:
			a, b := strings.ToLower(t1[i]), strings.ToLower(t2[i])
			if a != b {
				return a < b
			}
		}
	}

	// Equal prefixes: the shorter name comes first.
	return len(t1) < len(t2)
}

// SortNatural sorts names in place in natural order.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalSortLess(names[i], names[j])
	})
}
