package fs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smtools/internal/smtools"
)

// ignoreRule is one parsed exclusion line.
type ignoreRule struct {
	glob     string
	negate   bool // "!pattern": re-include what an earlier rule excluded
	dirOnly  bool // "pattern/": applies to directories only
	anchored bool // contains '/': matched against the root-relative path
}

func (r ignoreRule) matches(relSlash, base string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	subject := base
	if r.anchored {
		subject = relSlash
	}
	ok, _ := filepath.Match(r.glob, subject)
	return ok
}

// IgnoreMatcher excludes walk entries using gitignore-style rules.
//
// Rules are evaluated in order and the last matching rule wins. A rule
// without '/' matches an entry's basename at any depth; a rule containing
// '/' (a leading one is dropped) matches the slash-separated path relative
// to the walk root. A trailing '/' restricts the rule to directories and a
// leading '!' negates it.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher parses raw rule lines. Blank lines and lines starting
// with '#' are skipped. A malformed glob is reported as an invalid argument.
func NewIgnoreMatcher(lines []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	for _, line := range lines {
		raw := strings.TrimSpace(line)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		var r ignoreRule
		if rest, ok := strings.CutPrefix(raw, "!"); ok {
			r.negate = true
			raw = rest
		}
		if rest, ok := strings.CutSuffix(raw, "/"); ok {
			r.dirOnly = true
			raw = rest
		}
		if strings.Contains(raw, "/") {
			r.anchored = true
			raw = strings.TrimPrefix(raw, "/")
		}
		if raw == "" {
			continue
		}
		if _, err := filepath.Match(raw, ""); errors.Is(err, filepath.ErrBadPattern) {
			return nil, fmt.Errorf("ignore rule %q: %w", line, smtools.ErrInvalidArgument)
		}

		r.glob = raw
		m.rules = append(m.rules, r)
	}
	return m, nil
}

// Len returns the number of usable rules.
func (m *IgnoreMatcher) Len() int {
	return len(m.rules)
}

// Match reports whether the entry at relativePath should be skipped.
func (m *IgnoreMatcher) Match(relativePath string, isDir bool) bool {
	if relativePath == "" || relativePath == "." {
		return false
	}

	relSlash := filepath.ToSlash(relativePath)
	base := filepath.Base(relativePath)

	ignored := false
	for _, r := range m.rules {
		if r.matches(relSlash, base, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

// ParseIgnoreFile reads ignore rules, one per line, from path.
// Returns nil and no error if the file does not exist.
func ParseIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}

var _ smtools.Ignorer = (*IgnoreMatcher)(nil)
