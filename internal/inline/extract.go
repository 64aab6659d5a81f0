package inline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// commentMarkers start a template line once leading blanks are stripped.
var commentMarkers = []string{"//", "#"}

// Extract returns the comment block that follows line in file.  Lines
// 1..line are skipped; every following line that starts with a comment
// marker contributes the text after the marker, line terminator included.
// The block ends at the first other line or at EOF.  An empty block is not
// an error.
func Extract(file string, line int) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	defer f.Close()

	var (
		r   = bufio.NewReader(f)
		out strings.Builder
		n   int
	)
	for {
		text, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: read %s: %v", ErrTemplateNotFound, file, err)
		}
		if text == "" { // EOF
			break
		}
		n++
		if n > line {
			body, ok := commentBody(text)
			if !ok {
				break
			}
			out.WriteString(body)
		}
		if err != nil { // last line without terminator
			break
		}
	}
	return out.String(), nil
}

// commentBody strips leading blanks and a comment marker from text.
func commentBody(text string) (string, bool) {
	trimmed := strings.TrimLeft(text, " \t")
	for _, m := range commentMarkers {
		if strings.HasPrefix(trimmed, m) {
			return trimmed[len(m):], true
		}
	}
	return "", false
}
