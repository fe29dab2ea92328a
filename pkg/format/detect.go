package format

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/depgraph/pkg/errors"
)

var (
	mermaidHeader = regexp.MustCompile(`^(flowchart|graph)\s+(TD|TB|BT|LR|RL)\b`)
	dotHeader     = regexp.MustCompile(`^(strict\s+)?(digraph|graph)\b`)
	depfileLine   = regexp.MustCompile(`^[^\s:]+\s*:(\s+\S+)+\s*$`)
)

// Detect picks a format for the given file path and content sample. The file
// extension (or exact name, for Cargo.toml) decides when recognized;
// otherwise content heuristics are tried in priority order. An empty path is
// allowed and skips straight to the heuristics.
func Detect(path string, data []byte) (Format, error) {
	if path != "" {
		base := filepath.Base(path)
		ext := strings.ToLower(filepath.Ext(path))
		for _, f := range formats {
			for _, e := range f.Extensions {
				if e == base || (strings.HasPrefix(e, ".") && e == ext) {
					return f, nil
				}
			}
		}
	}

	if name := sniff(string(data)); name != "" {
		f, err := Lookup(name)
		if err != nil {
			return Format{}, err
		}
		return f, nil
	}
	return Format{}, errors.New(errors.ErrCodeInvalidFormat, "cannot detect input format; use an explicit format flag")
}

// sniff applies content heuristics, most distinctive first.
func sniff(content string) string {
	first := firstNonBlank(content)
	switch {
	case strings.HasPrefix(first, "{"):
		return "json"
	case mermaidHeader.MatchString(first):
		return "mermaid"
	case dotHeader.MatchString(first):
		return "dot"
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "#" {
			return "tgf"
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if depfileLine.MatchString(strings.TrimSpace(line)) {
			return "depfile"
		}
	}
	return ""
}

func firstNonBlank(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
