package table

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// commentRune starts a comment anywhere on a line. The format has no string
// quoting that could embed one, so everything after it is discarded.
const commentRune = '!'

// line is one physical line of table source after comment stripping.
// Exactly one of the following holds:
//   - key is non-empty: the line carried a "key: value" pair
//   - key is empty: the line was blank or comment-only
type line struct {
	num     int    // 1-based source line number
	key     string // trimmed key, empty for blank/comment-only lines
	value   string // trimmed value, may be empty
	comment string // trimmed text following the comment rune
	sep     bool   // comment is a block separator run ("!====...")
}

// isSeparator reports whether a comment marks a block boundary.
// Separators are runs of '=' or '-' characters, e.g. "!============".
func isSeparator(comment string) bool {
	if comment == "" {
		return false
	}

	for _, r := range comment {
		if r != '=' && r != '-' {
			return false
		}
	}

	return true
}

// scan reads the source into a flat sequence of lines, splitting each
// "key: value ! comment" line on the first colon. A non-blank line without
// a colon is fatal and reported as a [ParseError] with its line number.
func scan(r io.Reader) ([]line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []line

	num := 0

	for scanner.Scan() {
		num++
		raw := scanner.Text()

		text := raw
		comment := ""

		if idx := strings.IndexRune(raw, commentRune); idx >= 0 {
			text = raw[:idx]
			comment = strings.TrimSpace(raw[idx+utf8.RuneLen(commentRune):])
		}

		text = strings.TrimSpace(text)

		if text == "" {
			lines = append(lines, line{
				num:     num,
				comment: comment,
				sep:     isSeparator(comment),
			})

			continue
		}

		colon := strings.IndexRune(text, ':')
		if colon < 0 {
			return nil, &ParseError{
				Line:   num,
				Column: firstColumn(raw),
				Reason: "missing ':' between key and value",
				Text:   raw,
			}
		}

		lines = append(lines, line{
			num:     num,
			key:     strings.TrimSpace(text[:colon]),
			value:   strings.TrimSpace(text[colon+1:]),
			comment: comment,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return lines, nil
}

// firstColumn returns the 1-based column of the first non-space rune.
func firstColumn(raw string) int {
	col := 1

	for _, r := range raw {
		if r != ' ' && r != '\t' {
			break
		}

		col++
	}

	return col
}

// splitQuoted splits a value of single-quoted strings into their contents,
// e.g. "'abrupt 4XCO2' 'abrupt4xco2'" yields ["abrupt 4XCO2", "abrupt4xco2"].
// Unquoted runs between quoted strings are ignored. A value with no quotes
// at all is returned as a single element.
func splitQuoted(value string) []string {
	if !strings.ContainsRune(value, '\'') {
		if value == "" {
			return nil
		}

		return []string{value}
	}

	var (
		parts []string
		buf   strings.Builder
		open  bool
	)

	for _, r := range value {
		if r == '\'' {
			if open {
				parts = append(parts, buf.String())
				buf.Reset()
			}

			open = !open

			continue
		}

		if open {
			buf.WriteRune(r)
		}
	}

	return parts
}
