/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lexer.go
Description: Tokenizer for rule text. Produces identifiers, numbers and the arithmetic
symbols used by linear consequents. Keywords are identifiers matched case-insensitively
by the parser.
*/

package fuzzy

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits rule text into tokens. Unknown characters yield a RuleSyntaxError.
func lex(text string) ([]token, error) {
	var tokens []token
	runes := []rune(text)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			i = scanNumber(runes, i)
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		case r == '+':
			tokens = append(tokens, token{kind: tokPlus, text: "+", pos: i})
			i++
		case r == '-':
			tokens = append(tokens, token{kind: tokMinus, text: "-", pos: i})
			i++
		case r == '*':
			tokens = append(tokens, token{kind: tokStar, text: "*", pos: i})
			i++
		case r == '=':
			tokens = append(tokens, token{kind: tokEquals, text: "=", pos: i})
			i++
		default:
			return nil, &RuleSyntaxError{Rule: text, Token: string(r), Pos: i, Reason: "unexpected character"}
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(runes)})
	return tokens, nil
}

// scanNumber consumes digits, one decimal point and an optional exponent
func scanNumber(runes []rune, i int) int {
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	if i < len(runes) && runes[i] == '.' {
		i++
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
			j++
		}
		if j < len(runes) && unicode.IsDigit(runes[j]) {
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func (t token) isKeyword(kw string) bool {
	return t.kind == tokIdent && strings.EqualFold(t.text, kw)
}

func (t token) display() string {
	if t.kind == tokEOF {
		return "<end of rule>"
	}
	return t.text
}

var keywords = []string{"if", "then", "is", "and", "or"}

func isKeyword(name string) bool {
	for _, kw := range keywords {
		if strings.EqualFold(name, kw) {
			return true
		}
	}
	return false
}
