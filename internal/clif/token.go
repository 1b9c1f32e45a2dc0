package clif

import "strings"

// ParseError reports a tokenizer or grammar violation. Parse failures
// are always returned as values, never raised as faults.
type ParseError struct {
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse error: " + e.Message
}

func parseErrorf(message string) *ParseError {
	return &ParseError{Message: message}
}

// tokenize splits a CLIF source string into parenthesis and atom
// tokens. Line comments introduced by ';' are stripped first, and the
// token stream is validated for parenthesis balance.
func tokenize(src string) ([]string, error) {
	var sb strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	cleaned := strings.TrimSpace(sb.String())
	if cleaned == "" {
		return nil, parseErrorf("empty expression")
	}

	var tokens []string
	var atom strings.Builder
	flush := func() {
		if atom.Len() > 0 {
			tokens = append(tokens, atom.String())
			atom.Reset()
		}
	}
	for _, r := range cleaned {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			atom.WriteRune(r)
		}
	}
	flush()

	if len(tokens) == 0 {
		return nil, parseErrorf("no valid tokens found")
	}

	depth := 0
	for _, tok := range tokens {
		switch tok {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return nil, parseErrorf("unmatched closing parenthesis")
			}
		}
	}
	if depth != 0 {
		return nil, parseErrorf("unmatched opening parenthesis")
	}
	return tokens, nil
}

// matchingParen returns the index of the ')' closing the '(' at start,
// or -1 if start is not an opening parenthesis or it never closes.
func matchingParen(tokens []string, start int) int {
	if start >= len(tokens) || tokens[start] != "(" {
		return -1
	}
	depth := 1
	for i := start + 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
