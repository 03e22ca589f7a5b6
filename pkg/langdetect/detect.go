// Package langdetect guesses the language of a code block that was written
// without an info string. Shebangs are checked first, then a table of cheap
// textual signatures, then go-enry's classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags produced by Detect.
const (
	Go         = "go"
	Python     = "python"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	HTML       = "html"
	SQL        = "sql"
	Rust       = "rust"
	Dockerfile = "dockerfile"
	Bash       = "bash"
)

// classifierCandidates limits go-enry's classifier to languages commonly fenced in Markdown.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns the fence tag for a code block body. It reports false when
// no language could be determined with confidence.
func Detect(content []byte) (string, bool) {
	if len(bytes.TrimSpace(content)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang), true
	}

	s := newSample(content)
	for _, sig := range signatures {
		if sig.match(s) {
			return sig.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang), true
	}
	return "", false
}

// sample holds the views of a code block that signatures inspect.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
}

func newSample(content []byte) sample {
	return sample{raw: content, trimmed: bytes.TrimSpace(content), text: string(content)}
}

func (s sample) hasPrefix(prefix string) bool {
	return bytes.HasPrefix(s.trimmed, []byte(prefix))
}

func (s sample) containsAny(needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s.text, n) {
			return true
		}
	}
	return false
}

type signature struct {
	lang  string
	match func(sample) bool
}

// signatures are tried in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // Read-only signature table.
var signatures = []signature{
	{Go, func(s sample) bool { return s.hasPrefix("package ") }},
	{Python, looksLikePython},
	{HTML, func(s sample) bool {
		lower := strings.ToLower(string(s.trimmed))
		return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<head>") || strings.Contains(lower, "<body>")
	}},
	{JSON, func(s sample) bool {
		return (s.hasPrefix("{") || s.hasPrefix("[")) && bytes.ContainsRune(s.trimmed, '"')
	}},
	{Dockerfile, func(s sample) bool {
		return s.hasPrefix("FROM ") ||
			(s.containsAny("\nFROM ") && s.containsAny("\nRUN ")) ||
			(s.containsAny("WORKDIR ") && s.containsAny("COPY "))
	}},
	{SQL, func(s sample) bool {
		upper := strings.ToUpper(string(s.trimmed))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{Rust, func(s sample) bool { return s.containsAny("fn main()", "println!", "let mut ") }},
	{JavaScript, func(s sample) bool { return s.containsAny("=>", "const ", "let ", "console.log") }},
	{YAML, looksLikeYAML},
}

func looksLikePython(s sample) bool {
	if s.containsAny("__name__", "__main__") {
		return true
	}
	if s.containsAny("def ") && s.containsAny("):") {
		return true
	}
	// Go uses "import (" so that form is excluded.
	return s.containsAny("import ") && !s.containsAny("import (") &&
		(s.containsAny("from ") || s.hasPrefix("import "))
}

// looksLikeYAML counts "key: value" lines and top-level list items.
func looksLikeYAML(s sample) bool {
	const minYAMLLines = 2

	count := 0
	for line := range bytes.Lines(s.raw) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0 || line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"':
			count++
		}
	}
	return count >= minYAMLLines
}

// fenceTag converts a go-enry language name to a fence tag.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}
