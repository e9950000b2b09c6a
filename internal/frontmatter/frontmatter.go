// Package frontmatter separates a content file's `+++` metadata block from
// its markdown body and decodes the block.
package frontmatter

import (
	"bytes"
)

// Delimiter opens and closes a metadata block. It must stand alone on its line.
const Delimiter = "+++"

// Split separates the metadata block from the body.
//
// The block opens only when content starts with a delimiter line ("+++\n" or
// "+++\r\n") and closes at the first later line that is exactly the
// delimiter. Everything after the closing line's terminator is the body.
// If there is no opening line, or no closing line, had is false and body is
// the full input.
func Split(content []byte) (block []byte, body []byte, had bool) {
	rest, ok := cutOpening(content)
	if !ok {
		return nil, content, false
	}

	start, next, found := findClosing(rest)
	if !found {
		return nil, content, false
	}
	return rest[:start], rest[next:], true
}

// HasOpening reports whether content starts with a delimiter line. Together
// with Split it lets callers detect a block that was opened but never closed.
func HasOpening(content []byte) bool {
	_, ok := cutOpening(content)
	return ok
}

func cutOpening(content []byte) ([]byte, bool) {
	for _, nl := range []string{"\n", "\r\n"} {
		if rest, ok := bytes.CutPrefix(content, []byte(Delimiter+nl)); ok {
			return rest, true
		}
	}
	return nil, false
}

// findClosing scans rest line by line for the closing delimiter. It returns
// the offset where the delimiter line starts and the offset just past its
// terminator (len(rest) when the delimiter is the final, unterminated line).
func findClosing(rest []byte) (start, next int, found bool) {
	offset := 0
	for {
		end := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		if end < 0 {
			line = rest[offset:]
			next = len(rest)
		} else {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}
		if string(bytes.TrimSuffix(line, []byte("\r"))) == Delimiter {
			return offset, next, true
		}
		if end < 0 {
			return 0, 0, false
		}
		offset = next
	}
}
