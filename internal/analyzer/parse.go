package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
)

// The model is asked for JSON in a fenced block, but responses drift:
// older-style answers come back as a Python dict assigned to a variable.
// Parsing is strict either way. A fenced block is located, JSON decoding is
// attempted first, and only then is the text rewritten from Python literal
// syntax to JSON and decoded again. Nothing is ever evaluated; anything
// that does not decode to a literal mapping is rejected.

var (
	fencedBlock    = regexp.MustCompile("(?s)```(?:json|python)?\\s*(.*?)```")
	assignPrefix   = regexp.MustCompile(`^\s*\w+\s*=\s*`)
	trailingCommas = regexp.MustCompile(`,(\s*[}\]])`)
)

// ParseHierarchy extracts a partial hierarchy from a raw model response.
// An empty mapping is a valid answer (the window saw no chapter starts).
func ParseHierarchy(response string) (hierarchy.Hierarchy, error) {
	body := extractBody(response)
	if body == "" {
		return nil, fmt.Errorf("no structure payload in response")
	}

	raw, err := decodeMapping(body)
	if err != nil {
		rewritten := pythonLiteralToJSON(body)
		raw, err = decodeMapping(rewritten)
		if err != nil {
			return nil, fmt.Errorf("response is not a literal mapping: %w", err)
		}
	}

	return coerceHierarchy(raw), nil
}

// extractBody finds the mapping literal inside the response: the content of
// a fenced code block if present, otherwise the outermost braces.
func extractBody(response string) string {
	body := response
	if m := fencedBlock.FindStringSubmatch(response); m != nil {
		body = m[1]
	}
	body = assignPrefix.ReplaceAllString(strings.TrimSpace(body), "")

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start == -1 || end <= start {
		return ""
	}
	return body[start : end+1]
}

// decodeMapping decodes JSON into a generic mapping, keeping numbers as
// json.Number so page values survive intact.
func decodeMapping(body string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// pythonLiteralToJSON rewrites Python literal syntax (single-quoted
// strings, None/True/False, trailing commas) into JSON. It walks the text
// with string-state tracking so quotes inside values are preserved.
func pythonLiteralToJSON(body string) string {
	var out strings.Builder
	out.Grow(len(body))

	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '\'', '"':
			i = writeString(&out, runes, i)
		default:
			if word, n := bareWord(runes, i); n > 0 {
				switch word {
				case "None":
					out.WriteString("null")
				case "True":
					out.WriteString("true")
				case "False":
					out.WriteString("false")
				default:
					out.WriteString(word)
				}
				i += n - 1
				continue
			}
			out.WriteRune(c)
		}
	}

	return trailingCommas.ReplaceAllString(out.String(), "$1")
}

// writeString copies one quoted string starting at runes[start], emitting
// it double-quoted with inner quotes escaped. It returns the index of the
// closing quote.
func writeString(out *strings.Builder, runes []rune, start int) int {
	quote := runes[start]
	out.WriteRune('"')
	i := start + 1
	for ; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' && i+1 < len(runes) {
			out.WriteRune(c)
			out.WriteRune(runes[i+1])
			i++
			continue
		}
		if c == quote {
			break
		}
		if c == '"' {
			out.WriteString(`\"`)
			continue
		}
		out.WriteRune(c)
	}
	out.WriteRune('"')
	return i
}

// bareWord reads an identifier starting at runes[i], returning it and its
// length, or 0 when runes[i] does not start one.
func bareWord(runes []rune, i int) (string, int) {
	if !isWordRune(runes[i]) {
		return "", 0
	}
	if i > 0 && isWordRune(runes[i-1]) {
		return "", 0
	}
	j := i
	for j < len(runes) && isWordRune(runes[j]) {
		j++
	}
	return string(runes[i:j]), j - i
}

func isWordRune(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// coerceHierarchy converts the generic mapping into typed nodes. Entries
// that are not mappings, or whose page numbers are missing, mistyped, or
// impossible, are skipped: an unusable claim from one window must not
// survive to poison the merge of other windows' good claims.
func coerceHierarchy(raw map[string]any) hierarchy.Hierarchy {
	h := make(hierarchy.Hierarchy)
	for code, value := range raw {
		if node := coerceNode(code, value); node != nil {
			h[code] = node
		}
	}
	return h
}

func coerceNode(code string, value any) *hierarchy.Node {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	start, okStart := coerceInt(m["start"])
	end, okEnd := coerceInt(m["end"])
	if !okStart || !okEnd || start < 1 || end < start {
		return nil
	}
	node := &hierarchy.Node{Code: code, Start: start, End: end}
	node.Title, _ = m["title"].(string)

	if sections, ok := m["sections"].(map[string]any); ok {
		for childCode, childValue := range sections {
			if child := coerceNode(childCode, childValue); child != nil {
				if node.Sections == nil {
					node.Sections = make(map[string]*hierarchy.Node)
				}
				node.Sections[childCode] = child
			}
		}
	}
	return node
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
