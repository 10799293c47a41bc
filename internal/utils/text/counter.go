// Package text holds the character counting shared by the vision
// describers so the description length limit means the same thing for
// every provider.
package text

// CountRunes returns the number of Unicode characters in s. Garment
// descriptions may mix scripts and emoji, so byte length would
// over-count against the limit.
func CountRunes(s string) int {
	return len([]rune(s))
}
