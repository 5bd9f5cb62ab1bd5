package asm

import "strings"

// ParsedLine is the result of parsing one logical source line: an optional label, the mnemonic
// (an opcode name or a directive stem, without its leading dot), and its ordered operand tokens.
type ParsedLine struct {
	Label    string
	Mnemonic string
	Operands []string
}

// IsDirective reports whether the parsed line names one of the four directives rather than an
// instruction.
func (p ParsedLine) IsDirective() bool {
	return directiveStems[p.Mnemonic]
}

// directiveStems lists the directive names, without their leading dot, for reserved-word checks
// and for recognizing a directive line.
var directiveStems = map[string]bool{
	"data":   true,
	"string": true,
	"extern": true,
	"entry":  true,
}

// reservedWords is the set of identifiers forbidden as labels or macro names: the sixteen opcode
// mnemonics, the eight register names, the two macro keywords, and the four directive stems.
var reservedWords = func() map[string]bool {
	words := map[string]bool{"macr": true, "endmacr": true}

	for name := range opcodeTable {
		words[name] = true
	}

	for name := range directiveStems {
		words[name] = true
	}

	for n := 0; n < 8; n++ {
		words["r"+string(rune('0'+n))] = true
	}

	return words
}()

// maxLabelLength bounds a label to 31 characters: one letter plus up to 30 letters or digits.
const maxLabelLength = 31

// IsReservedWord reports whether name is one of the reserved words forbidden as a label or macro
// name: an opcode mnemonic, a register name, a macro keyword, or a directive stem.
func IsReservedWord(name string) bool {
	return reservedWords[name]
}

// validLabel reports whether name is a syntactically valid, non-reserved label.
func validLabel(name string) bool {
	if len(name) == 0 || len(name) > maxLabelLength {
		return false
	}

	for i, r := range name {
		switch {
		case i == 0 && isLetter(r):
		case i > 0 && (isLetter(r) || isDigit(r)):
		default:
			return false
		}
	}

	return !reservedWords[name]
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// parseLine parses one logical source line into a ParsedLine. The caller is responsible for
// skipping blank and whole-line comment lines before calling this.
func parseLine(text string) (ParsedLine, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParsedLine{}, &SyntaxError{Message: "empty line"}
	}

	var label string

	first, rest, ok := cutToken(text)
	if !ok {
		return ParsedLine{}, &SyntaxError{Message: "missing mnemonic"}
	}

	if strings.HasSuffix(first, ":") {
		label = strings.TrimSuffix(first, ":")
		if !validLabel(label) {
			return ParsedLine{}, &SyntaxError{Message: "invalid label: " + label}
		}

		first, rest, ok = cutToken(rest)
		if !ok {
			return ParsedLine{}, &SyntaxError{Message: "label with no instruction: " + label}
		}
	}

	var mnemonic string

	switch {
	case strings.HasPrefix(first, "."):
		mnemonic = strings.TrimPrefix(first, ".")
		if !directiveStems[mnemonic] {
			return ParsedLine{}, &SyntaxError{Message: "unknown directive: " + first}
		}
	case isOpcodeName(first):
		mnemonic = first
	default:
		return ParsedLine{}, &SyntaxError{Message: "unknown opcode: " + first}
	}

	var operands []string

	if mnemonic == "string" {
		// A string literal's payload may contain commas or whitespace that the ordinary
		// operand splitter would reject, so it is handled specially: everything from the
		// first '"' to the last '"' on the remainder of the line is the payload, quotes
		// included.
		rest = strings.TrimSpace(rest)

		first := strings.IndexByte(rest, '"')
		last := strings.LastIndexByte(rest, '"')

		if first == -1 || last == first {
			return ParsedLine{}, &SyntaxError{Message: "malformed string literal"}
		}

		operands = []string{rest[first : last+1]}
	} else {
		var err error

		operands, err = parseOperands(rest)
		if err != nil {
			return ParsedLine{}, err
		}
	}

	return ParsedLine{Label: label, Mnemonic: mnemonic, Operands: operands}, nil
}

// cutToken extracts the first whitespace-delimited token from s, returning it, the remainder with
// leading whitespace stripped, and whether a token was found.
func cutToken(s string) (tok, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", "", false
	}

	i := strings.IndexAny(s, " \t")
	if i == -1 {
		return s, "", true
	}

	return s[:i], strings.TrimLeft(s[i:], " \t"), true
}

// parseOperands splits a comma-separated operand list. Intra-operand whitespace is forbidden:
// each operand must be a single unbroken token once surrounding whitespace around commas is
// trimmed. An empty field -- a leading, trailing, or doubled comma -- is a syntax error, as is a
// pair of tokens with no comma between them.
func parseOperands(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	operands := make([]string, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, &SyntaxError{Message: "empty operand"}
		}

		if strings.IndexAny(f, " \t") != -1 {
			return nil, &SyntaxError{Message: "unexpected token near: " + f}
		}

		operands = append(operands, f)
	}

	return operands, nil
}

// isCommentLine reports whether line, once leading whitespace is ignored, is a whole-line comment.
// A comment is only ever a whole-line construct: there is no trailing/inline-comment syntax, so a
// ';' appearing after the first non-blank token -- inside a string literal, say -- is ordinary
// text.
func isCommentLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, ";")
}
