package htmldoc

import "bytes"

// scanAttributeSpans scans the raw bytes of a start tag to find the span of
// each attribute's `name="value"` text. base is the position of the tag's
// opening '<'. Attribute names must be given in the order the tokenizer
// reported them, which matches their order in the raw tag.
func scanAttributeSpans(raw []byte, base Pos, attrs []string) map[string]Pos {
	if len(attrs) == 0 {
		return nil
	}
	result := make(map[string]Pos, len(attrs))

	pos := 0

	// Skip '<' and the tag name.
	if pos < len(raw) && raw[pos] == '<' {
		pos++
	}
	for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
		pos++
	}

	attrIndex := 0
	for pos < len(raw) && attrIndex < len(attrs) {
		// Skip whitespace before the attribute name.
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}

		if pos >= len(raw) || raw[pos] == '>' || raw[pos] == '/' {
			break
		}

		nameStart := pos

		// Find the attribute name end.
		for pos < len(raw) && raw[pos] != '=' && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
			pos++
		}
		end := pos

		// Skip any whitespace before '='.
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}

		if pos < len(raw) && raw[pos] == '=' {
			pos++ // skip '='

			// Skip any whitespace after '='.
			for pos < len(raw) && isAttrSpace(raw[pos]) {
				pos++
			}

			if pos < len(raw) && (raw[pos] == '"' || raw[pos] == '\'') {
				quote := raw[pos]
				pos++ // skip opening quote
				for pos < len(raw) && raw[pos] != quote {
					if raw[pos] == '\\' && pos+1 < len(raw) {
						pos += 2
					} else {
						pos++
					}
				}
				if pos < len(raw) {
					pos++ // skip closing quote
				}
				end = pos
			} else {
				// Unquoted value.
				for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
					pos++
				}
				end = pos
			}
		}

		result[attrs[attrIndex]] = attrSpanPos(raw, base, nameStart, end)
		attrIndex++
	}

	return result
}

// attrSpanPos converts a [start, end) byte range within a raw tag into an
// absolute position, accounting for newlines inside the tag before start.
func attrSpanPos(raw []byte, base Pos, start, end int) Pos {
	line := base.Line
	col := base.Column + start
	if nl := bytes.Count(raw[:start], []byte{'\n'}); nl > 0 {
		line += nl
		col = start - bytes.LastIndexByte(raw[:start], '\n')
	}
	return Pos{
		Line:        line,
		Column:      col,
		StartOffset: base.StartOffset + start,
		EndOffset:   base.StartOffset + end,
	}
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
