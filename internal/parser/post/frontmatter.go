package post

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/postmd/internal/ir"
)

const (
	frontMatterFence = "---"
	frontMatterEnd   = "..."
)

// splitFrontMatter separates a leading YAML block from the body.
// The block must start on the first line with "---" and end with a later
// "---" or "..." line; otherwise the whole input is body.
func splitFrontMatter(src string) (front, body string, ok bool) {
	first, rest, found := strings.Cut(src, "\n")
	if !found || strings.TrimRight(first, " \t") != frontMatterFence {
		return "", src, false
	}

	offset := 0
	for offset <= len(rest) {
		line, after, more := strings.Cut(rest[offset:], "\n")
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == frontMatterFence || trimmed == frontMatterEnd {
			return rest[:offset], after, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", src, false
}

// decodeFrontMatter unmarshals a YAML front matter block into metadata.
func decodeFrontMatter(front string) (ir.Metadata, error) {
	var meta ir.Metadata
	if strings.TrimSpace(front) == "" {
		return meta, nil
	}
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return meta, fmt.Errorf("invalid front matter: %w", err)
	}
	return meta, nil
}

// Slugify lower-cases s and joins its letter/digit runs with hyphens.
func Slugify(s string) string {
	var sb strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingDash = false
			sb.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return sb.String()
}
