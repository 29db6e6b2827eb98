package dump

import (
	"bufio"
	"io"
	"strings"
)

// Sentinel ends interactive input: a line whose trimmed content equals it
// stops collection without becoming part of the text.
const Sentinel = "END"

// Read collects lines from r until the sentinel line or end of stream and
// returns them joined by newlines. It blocks as long as r does; there is
// no timeout.
func Read(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var b strings.Builder
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == Sentinel {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
