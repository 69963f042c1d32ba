// Package buildlog extracts documentation targets from a dotnet build log.
// The compiler emits warning CS1591 for every publicly visible symbol that
// lacks an XML doc comment; each such line names the file and the symbol.
package buildlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DiagnosticCode is the dotnet missing-documentation warning.
const DiagnosticCode = "CS1591"

// Target identifies a file and the symbol inside it that needs a doc
// comment.
type Target struct {
	File   string
	Member string
}

// ParseError reports a build log that could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing build log %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	memberRe = regexp.MustCompile(`'([^']+)'`)
	// MSBuild prefixes lines with the project number, e.g. "  12>".
	projectPrefixRe = regexp.MustCompile(`^\s*\d+>`)
)

// Parse reads a dotnet build log and returns one target per CS1591 line, in
// log order with duplicates preserved. Malformed CS1591 lines are reported
// on warn and skipped.
func Parse(path string, warn io.Writer) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	targets, err := ParseReader(f, warn)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return targets, nil
}

// ParseReader scans log lines for the CS1591 pattern. A well-formed line
// looks like:
//
//	file.cs(10,5): warning CS1591: Missing XML comment for publicly visible type or member 'Foo.Bar'
func ParseReader(r io.Reader, warn io.Writer) ([]Target, error) {
	if warn == nil {
		warn = io.Discard
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var targets []Target
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		warnIdx := strings.Index(line, "warning "+DiagnosticCode)
		if warnIdx < 0 {
			continue
		}

		paren := strings.Index(line, "(")
		if paren <= 0 || paren > warnIdx {
			fmt.Fprintf(warn, "⚠️ line %d: %s warning without a file reference, skipping\n", lineNo, DiagnosticCode)
			continue
		}
		file := strings.TrimSpace(projectPrefixRe.ReplaceAllString(line[:paren], ""))

		member := memberRe.FindStringSubmatch(line[warnIdx:])
		if file == "" || member == nil {
			fmt.Fprintf(warn, "⚠️ line %d: %s warning without a member name, skipping\n", lineNo, DiagnosticCode)
			continue
		}

		targets = append(targets, Target{File: file, Member: member[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

// WriteFileList writes the distinct file paths of targets to path, one per
// line, keeping first-occurrence order.
func WriteFileList(path string, targets []Target) error {
	seen := make(map[string]bool, len(targets))
	var files []string
	for _, t := range targets {
		if !seen[t.File] {
			seen[t.File] = true
			files = append(files, t.File)
		}
	}
	content := strings.Join(files, "\n")
	if content != "" {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
