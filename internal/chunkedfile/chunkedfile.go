// Package chunkedfile splits a script test file into independent chunks
// and checks the errors each chunk produces against inline expectations.
//
// Chunks are separated by lines consisting of "---". A line containing
// "###" expects an error on that line; the rest of the line is a quoted
// Go string holding a regular expression the error message must match.
//
//	d = chrono.datetime_rfc3339("nope") ### "failed to parse"
//	---
//	print(chrono.timedelta_zero())
//
// Every chunk keeps the line numbering of the whole file, so positions
// in error messages point at the original file.
package chunkedfile // import "github.com/starlark-chrono/chrono/internal/chunkedfile"

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

const marker = "###"

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...any)
}

// A Chunk is one independently evaluated portion of a file.
type Chunk struct {
	Source   string
	filename string
	report   Reporter
	want     map[int]*regexp.Regexp
}

// Read loads filename and splits it into chunks, reporting malformed
// expectations to report.
func Read(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return Parse(filename, string(data), report)
}

// Parse splits src into chunks. filename is used only in messages.
func Parse(filename, src string, report Reporter) []Chunk {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	var chunks []Chunk
	start := 0
	flush := func(end int) {
		c := Chunk{
			// Leading blank lines keep positions aligned with the file.
			Source:   strings.Repeat("\n", start) + strings.Join(lines[start:end], "\n"),
			filename: filename,
			report:   report,
			want:     make(map[int]*regexp.Regexp),
		}
		for i := start; i < end; i++ {
			at := strings.Index(lines[i], marker)
			if at < 0 {
				continue
			}
			linenum := i + 1
			quoted := strings.TrimSpace(lines[i][at+len(marker):])
			pattern, err := strconv.Unquote(quoted)
			if err != nil {
				report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, quoted)
				continue
			}
			rx, err := regexp.Compile(pattern)
			if err != nil {
				report.Errorf("\n%s:%d: %v", filename, linenum, err)
				continue
			}
			c.want[linenum] = rx
		}
		chunks = append(chunks, c)
	}
	for i, line := range lines {
		if line == "---" {
			flush(i)
			start = i + 1
		}
	}
	flush(len(lines))
	return chunks
}

// GotError records an error reported at linenum. An error nobody
// expected, or one whose message does not match, is reported.
func (c *Chunk) GotError(linenum int, msg string) {
	rx, ok := c.want[linenum]
	if !ok {
		c.report.Errorf("\n%s:%d: unexpected error: %v", c.filename, linenum, msg)
		return
	}
	delete(c.want, linenum)
	if !rx.MatchString(msg) {
		c.report.Errorf("\n%s:%d: error %q does not match pattern %q", c.filename, linenum, msg, rx)
	}
}

// Done reports every expected error that never occurred.
func (c *Chunk) Done() {
	for linenum, rx := range c.want {
		c.report.Errorf("\n%s:%d: expected error matching %q", c.filename, linenum, rx)
	}
}
