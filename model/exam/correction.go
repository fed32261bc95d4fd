package exam

import "strings"

// Correct applies the rubric refinement rule to a line: when the first comma is
// immediately followed by a space and another character, that character is
// incremented by one byte. It returns the line unchanged and false otherwise.
func Correct(line string) (string, bool) {
	idx := strings.IndexByte(line, ',')
	if idx == -1 || idx+2 >= len(line) || line[idx+1] != ' ' {
		return line, false
	}
	pos := idx + 2
	corrected := []byte(line)
	corrected[pos]++
	return string(corrected), true
}
