package filesystem

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	fmDelimiter = "---"
	maxTitleLen = 80
)

// document is a note split into its YAML frontmatter and markdown body
type document struct {
	meta *yaml.Node // Mapping node, nil when the note has no frontmatter
	body string
}

// parseDocument splits content at the frontmatter delimiters. Malformed frontmatter is
// treated as body text so the note still loads.
func parseDocument(content []byte) document {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if !strings.HasPrefix(text, fmDelimiter+"\n") {
		return document{body: text}
	}

	rest := text[len(fmDelimiter)+1:]
	if strings.HasPrefix(rest, fmDelimiter) {
		return document{body: strings.TrimPrefix(rest[len(fmDelimiter):], "\n")}
	}
	end := strings.Index(rest, "\n"+fmDelimiter)
	if end < 0 {
		return document{body: text}
	}

	raw := rest[:end]
	body := strings.TrimPrefix(rest[end+1+len(fmDelimiter):], "\n")

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &root); err != nil {
		return document{body: text}
	}
	if len(root.Content) == 0 {
		return document{body: body}
	}
	meta := root.Content[0]
	if meta.Kind != yaml.MappingNode {
		return document{body: text}
	}
	return document{meta: meta, body: body}
}

// get returns the scalar value stored under key
func (d document) get(key string) (string, bool) {
	if d.meta == nil {
		return "", false
	}
	for i := 0; i+1 < len(d.meta.Content); i += 2 {
		if d.meta.Content[i].Value == key && d.meta.Content[i+1].Kind == yaml.ScalarNode {
			return d.meta.Content[i+1].Value, true
		}
	}
	return "", false
}

// set stores a scalar under key, keeping the position of an existing key.
// An empty value removes the key.
func (d *document) set(key, value string) {
	if value == "" {
		d.remove(key)
		return
	}
	if d.meta == nil {
		d.meta = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	for i := 0; i+1 < len(d.meta.Content); i += 2 {
		if d.meta.Content[i].Value == key {
			d.meta.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
			return
		}
	}
	d.meta.Content = append(d.meta.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

func (d *document) remove(key string) {
	if d.meta == nil {
		return
	}
	for i := 0; i+1 < len(d.meta.Content); i += 2 {
		if d.meta.Content[i].Value == key {
			d.meta.Content = append(d.meta.Content[:i], d.meta.Content[i+2:]...)
			return
		}
	}
}

// bytes renders the document. Empty frontmatter is dropped.
func (d document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if d.meta != nil && len(d.meta.Content) > 0 {
		buf.WriteString(fmDelimiter + "\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.meta); err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
		}
		buf.WriteString(fmDelimiter + "\n")
	}
	buf.WriteString(d.body)
	return buf.Bytes(), nil
}

// title returns the first non-empty body line without heading markers
func (d document) title() string {
	for line := range strings.SplitSeq(d.body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxTitleLen {
			runes := []rune(line)
			line = string(runes[:maxTitleLen-1]) + "…"
		}
		return line
	}
	return ""
}

// createdLayouts are the date formats accepted in a "created" property
var createdLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// parseTimestamp reads a Unix timestamp (seconds or milliseconds) or a date
// and returns Unix milliseconds
func parseTimestamp(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return 0, false
		}
		// Ten digits or fewer are seconds.
		if n < 1e11 {
			return n * 1000, true
		}
		return n, true
	}
	for _, layout := range createdLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
