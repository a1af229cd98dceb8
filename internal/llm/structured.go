package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value after extraction.
// It returns nil when the value is acceptable.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of raw model output and decodes
// it into T. Markdown fences, surrounding prose, comments and bare leading
// decimals (".5") are tolerated. A non-nil validator runs on the result.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	block = normalizeLeadingDecimalNumbers(stripJSONComments(block))

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// stripCodeFences drops ``` fence lines and keeps everything else.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// jsonScanner walks a JSON-ish document byte by byte and tracks whether the
// current byte sits inside a string literal.
type jsonScanner struct {
	s        string
	i        int
	inString bool
	escaped  bool
}

// next advances one byte. It reports the byte and whether it is structural,
// i.e. outside any string literal and not a quote.
func (sc *jsonScanner) next() (byte, bool) {
	c := sc.s[sc.i]
	sc.i++
	switch {
	case sc.escaped:
		sc.escaped = false
		return c, false
	case sc.inString && c == '\\':
		sc.escaped = true
		return c, false
	case c == '"':
		sc.inString = !sc.inString
		return c, false
	default:
		return c, !sc.inString
	}
}

func (sc *jsonScanner) done() bool { return sc.i >= len(sc.s) }

// extractJSONBlock returns the first balanced {...} block in s.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	sc := &jsonScanner{s: s, i: start}
	depth := 0
	for !sc.done() {
		c, structural := sc.next()
		if !structural {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start:sc.i]
			}
		}
	}
	return ""
}

// stripJSONComments removes // and /* */ comments outside string literals.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	sc := &jsonScanner{s: s}
	for !sc.done() {
		at := sc.i
		c, structural := sc.next()
		if structural && c == '/' && at+1 < len(s) {
			switch s[at+1] {
			case '/':
				for !sc.done() && s[sc.i] != '\n' {
					sc.i++
				}
				continue
			case '*':
				end := strings.Index(s[at+2:], "*/")
				if end == -1 {
					sc.i = len(s)
				} else {
					sc.i = at + 2 + end + 2
				}
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" outside strings
// into "0.8" and "-0.3".
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	sc := &jsonScanner{s: s}
	for !sc.done() {
		at := sc.i
		c, structural := sc.next()
		if structural && c == '.' && at+1 < len(s) && isDigit(s[at+1]) && isNumericBoundary(prevNonSpace(s, at-1)) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return s[i]
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
