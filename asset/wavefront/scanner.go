package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/potato3d/objparser/types"
)

// Feed each line of r to fn until the stream is exhausted or fn returns false.
// Lines have no length limit; a trailing CR is dropped. It returns the number
// of lines read and whether the stream was consumed in full.
func scanLines(r io.Reader, fn func(lineNum int, line string) bool) (int, bool, error) {
	reader := bufio.NewReader(r)

	lineNum := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return lineNum, false, fmt.Errorf("wavefront: read failed at line %d: %w", lineNum+1, err)
		}
		if line == "" && err == io.EOF {
			return lineNum, true, nil
		}

		lineNum++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if !fn(lineNum, line) {
			return lineNum, false, nil
		}

		if err == io.EOF {
			return lineNum, true, nil
		}
	}
}

// Skip blank lines, report comments and extract the line keyword. The returned
// scanner is positioned right after the keyword. If ok is false the line has
// been fully handled.
func readKeyword(lineNum int, line string, comment *Signal[Message]) (keyword string, kwStart int, fs *fieldScanner, ok bool) {
	fs = newFieldScanner(line)
	fs.skipSpace()
	if fs.eof() {
		return "", 0, nil, false
	}

	// The comment body starts past the marker and one separator.
	if fs.peek() == '#' {
		text := ""
		if bodyStart := fs.pos + 2; bodyStart <= len(line) {
			text = line[bodyStart:]
		}
		comment.emit(Message{Line: lineNum, Text: text})
		return "", 0, nil, false
	}

	kwStart = fs.pos
	keyword, _ = fs.word()
	return keyword, kwStart, fs, true
}

// Return the part of line that starts two characters after kwStart. This is
// how names that may contain whitespace (objects, groups) are extracted.
func remainderAfterKeyword(line string, kwStart int) string {
	if start := kwStart + 2; start <= len(line) {
		return line[start:]
	}
	return ""
}

// fieldScanner walks the fields of a single line. Reads never skip leading
// whitespace implicitly; callers call skipSpace between fields.
type fieldScanner struct {
	line string
	pos  int
}

func newFieldScanner(line string) *fieldScanner {
	return &fieldScanner{line: line}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (fs *fieldScanner) eof() bool {
	return fs.pos >= len(fs.line)
}

// Returns the next byte or 0 at the end of the line.
func (fs *fieldScanner) peek() byte {
	if fs.eof() {
		return 0
	}
	return fs.line[fs.pos]
}

func (fs *fieldScanner) advance() {
	if !fs.eof() {
		fs.pos++
	}
}

func (fs *fieldScanner) skipSpace() {
	for !fs.eof() && isSpace(fs.line[fs.pos]) {
		fs.pos++
	}
}

// Read a run of non-whitespace bytes.
func (fs *fieldScanner) word() (string, bool) {
	start := fs.pos
	for !fs.eof() && !isSpace(fs.line[fs.pos]) {
		fs.pos++
	}
	if fs.pos == start {
		return "", false
	}
	return fs.line[start:fs.pos], true
}

// Read every remaining word.
func (fs *fieldScanner) words() []string {
	var out []string
	for {
		fs.skipSpace()
		w, ok := fs.word()
		if !ok {
			return out
		}
		out = append(out, w)
	}
}

// Read the longest prefix that forms a signed decimal integer.
func (fs *fieldScanner) integer() (int, bool) {
	end := fs.pos
	if end < len(fs.line) && (fs.line[end] == '-' || fs.line[end] == '+') {
		end++
	}
	digitStart := end
	for end < len(fs.line) && isDigit(fs.line[end]) {
		end++
	}
	if end == digitStart {
		return 0, false
	}

	v, err := strconv.Atoi(fs.line[fs.pos:end])
	if err != nil {
		return 0, false
	}
	fs.pos = end
	return v, true
}

// Read the longest prefix that forms a floating point number: an optional
// sign, digits with an optional fraction and an optional exponent. Trailing
// bytes are left for the caller to inspect.
func (fs *fieldScanner) float() (float64, bool) {
	line := fs.line
	end := fs.pos
	if end < len(line) && (line[end] == '-' || line[end] == '+') {
		end++
	}

	digits := 0
	for end < len(line) && isDigit(line[end]) {
		end++
		digits++
	}
	if end < len(line) && line[end] == '.' {
		end++
		for end < len(line) && isDigit(line[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	// Only consume the exponent if it is well formed.
	if end < len(line) && (line[end] == 'e' || line[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(line) && (line[expEnd] == '-' || line[expEnd] == '+') {
			expEnd++
		}
		if expEnd < len(line) && isDigit(line[expEnd]) {
			for expEnd < len(line) && isDigit(line[expEnd]) {
				expEnd++
			}
			end = expEnd
		}
	}

	v, err := strconv.ParseFloat(line[fs.pos:end], 64)
	if err != nil {
		return 0, false
	}
	fs.pos = end
	return v, true
}

// Read three whitespace separated numbers and skip any whitespace after them.
func (fs *fieldScanner) vec3() (types.Vec3, bool) {
	var v types.Vec3
	for i := 0; i < 3; i++ {
		fs.skipSpace()
		coord, ok := fs.float()
		if !ok {
			return v, false
		}
		v[i] = coord
	}
	fs.skipSpace()
	return v, true
}

// Read one number and skip any whitespace after it.
func (fs *fieldScanner) scalar() (float64, bool) {
	fs.skipSpace()
	v, ok := fs.float()
	if !ok {
		return 0, false
	}
	fs.skipSpace()
	return v, true
}
