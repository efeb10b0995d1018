package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator      = "---\n"
	closeSeparator = "\n---\n"
)

// Note is a markdown document with a YAML frontmatter header.
type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a
// frontmatter header yields an empty Meta and the whole content as Body.
func Parse(content string) (Note, error) {
	if !strings.HasPrefix(content, separator) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closeSeparator)
	if idx < 0 {
		return Note{}, fmt.Errorf("invalid frontmatter: missing closing separator")
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Note{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return Note{Meta: meta, Body: rest[idx+len(closeSeparator):]}, nil
}

func (n Note) Render() (string, error) {
	raw, err := yaml.Marshal(n.Meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(n.Body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}

// ReplaceBlock swaps the text between the two markers for generated, or
// appends a fresh marked block when the markers are absent.
func ReplaceBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + generated + "\n" + endMarker
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(endMarker):]
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
