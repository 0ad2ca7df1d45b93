package migration

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var confirmAnswers = map[string]struct{}{"oui": {}, "o": {}, "yes": {}, "y": {}}

// Confirm prints prompt and reads one line. Only oui/o/yes/y (any case)
// confirm; anything else, including EOF, declines.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	_, ok := confirmAnswers[strings.ToLower(strings.TrimSpace(line))]
	return ok
}
