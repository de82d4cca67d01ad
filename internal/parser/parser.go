// Package parser reads journal entries written as Markdown files with an
// optional YAML frontmatter block.
package parser

import (
	"bytes"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the recognised header of a journal file. Unknown keys are
// ignored.
type Frontmatter struct {
	Date   rawScalar `yaml:"date"`
	Title  string    `yaml:"title"`
	Locked bool      `yaml:"locked"`
	Access string    `yaml:"access"`
}

// rawScalar keeps the scalar text as written, so an unquoted 2024-03-05 is
// not turned into a timestamp.
type rawScalar string

func (r *rawScalar) UnmarshalYAML(n *yaml.Node) error {
	*r = rawScalar(strings.TrimSpace(n.Value))
	return nil
}

// Entry is a parsed journal file.
type Entry struct {
	// Date is the frontmatter date, or the file's base name when that looks
	// like a date key. It is not validated here.
	Date   string
	Title  string
	Locked bool
	Access string
	Body   string
	// HasFrontmatter is false when the header was absent or unreadable.
	HasFrontmatter bool
}

// Parse splits data into frontmatter and body. name is the file's path in
// the vault and only supplies a fallback date.
func Parse(name string, data []byte) *Entry {
	fm, body, ok := splitFrontmatter(data)
	e := &Entry{
		Date:           string(fm.Date),
		Title:          deriveTitle(fm.Title, body),
		Locked:         fm.Locked,
		Access:         strings.ToLower(strings.TrimSpace(fm.Access)),
		Body:           body,
		HasFrontmatter: ok,
	}
	if e.Date == "" {
		e.Date = strings.TrimSuffix(filepath.Base(name), ".md")
	}
	return e
}

// splitFrontmatter separates a leading --- delimited YAML block from the
// body. Without a closing delimiter, or with invalid YAML, everything is
// body.
func splitFrontmatter(data []byte) (Frontmatter, string, bool) {
	const delim = "---"
	var fm Frontmatter
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return fm, string(data), false
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return fm, string(data), false
	}
	block := rest[:idx]
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")

	if err := yaml.Unmarshal(block, &fm); err != nil {
		return Frontmatter{}, string(data), false
	}
	return fm, body, true
}

// deriveTitle prefers the frontmatter title, then the first H1 heading.
func deriveTitle(title, body string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	for _, line := range strings.Split(body, "\n") {
		if t := strings.TrimSpace(line); strings.HasPrefix(t, "# ") {
			return strings.TrimSpace(t[2:])
		}
	}
	return ""
}
