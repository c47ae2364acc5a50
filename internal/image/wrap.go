package imagepkg

import "strings"

// Wrap breaks text into lines whose measured width stays within maxWidth.
// Words are separated by single spaces and are never split: a word wider
// than maxWidth ends up on a line of its own. Joining the result with single
// spaces gives back the original text.
func Wrap(text string, maxWidth int, measure func(string) int) []string {
	words := strings.Split(text, " ")

	var lines []string
	currentLine := words[0]
	for _, word := range words[1:] {
		testLine := currentLine + " " + word
		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}
		lines = append(lines, currentLine)
		currentLine = word
	}
	return append(lines, currentLine)
}
