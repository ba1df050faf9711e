package docast

import "strings"

// parseAttributes scans a pandoc-style attribute block of the form
// {#id .class key=value key="quoted value"}. It returns ok=false for
// anything that is not a well-formed block, in which case the caller must
// leave the surrounding text untouched.
func parseAttributes(s string) (id string, classes []string, params []Param, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", nil, nil, false
	}
	body := s[1 : len(s)-1]

	i := 0
	for i < len(body) {
		if isAttrSpace(body[i]) {
			i++
			continue
		}
		switch body[i] {
		case '#':
			tok, next := readAttrToken(body, i+1)
			if tok == "" {
				return "", nil, nil, false
			}
			id = tok
			i = next
		case '.':
			tok, next := readAttrToken(body, i+1)
			if tok == "" {
				return "", nil, nil, false
			}
			classes = append(classes, tok)
			i = next
		default:
			key, next := readAttrKey(body, i)
			if key == "" || next >= len(body) || body[next] != '=' {
				return "", nil, nil, false
			}
			val, next, valOK := readAttrValue(body, next+1)
			if !valOK {
				return "", nil, nil, false
			}
			params = append(params, Param{Key: key, Value: val})
			i = next
		}
	}
	return id, classes, params, true
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readAttrToken reads an id or class token: everything up to the next
// whitespace byte.
func readAttrToken(s string, start int) (string, int) {
	i := start
	for i < len(s) && !isAttrSpace(s[i]) {
		i++
	}
	return s[start:i], i
}

// readAttrKey reads a key: everything up to '=' or whitespace.
func readAttrKey(s string, start int) (string, int) {
	i := start
	for i < len(s) && !isAttrSpace(s[i]) && s[i] != '=' {
		i++
	}
	return s[start:i], i
}

// readAttrValue reads a bare or double-quoted value. Quoted values may
// contain spaces but not escapes.
func readAttrValue(s string, start int) (string, int, bool) {
	if start < len(s) && s[start] == '"' {
		end := strings.IndexByte(s[start+1:], '"')
		if end < 0 {
			return "", 0, false
		}
		return s[start+1 : start+1+end], start + end + 2, true
	}
	val, i := readAttrToken(s, start)
	return val, i, true
}
