package script

import (
	"strings"
	"unicode"
)

// Lexer tokenizes scene script input
type Lexer struct {
	input   string
	pos     int  // current position
	nextPos int  // next position
	ch      byte // current character
	line    int  // current line
	column  int  // current column
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar reads the next character and updates position tracking
func (l *Lexer) readChar() {
	// The newline itself belongs to the line it ends.
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.nextPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.nextPos]
	}

	l.pos = l.nextPos
	l.nextPos++
	l.column++
}

// peekChar returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.nextPos >= len(l.input) {
		return 0
	}
	return l.input[l.nextPos]
}

// skipWhitespace skips spaces and tabs (not newlines)
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips a comment line (from # to end of line)
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readString reads a quoted string (single, double, or backtick)
func (l *Lexer) readString(quote byte) string {
	var sb strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
				return sb.String()
			default:
				sb.WriteByte(l.ch)
			}
		} else {
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.ch == quote {
		l.readChar() // skip closing quote
	}

	return sb.String()
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	var sb strings.Builder
	for isIdentifierChar(l.ch) {
		sb.WriteByte(l.ch)
		l.readChar()
	}
	return sb.String()
}

// readNumber reads an optionally signed decimal literal
func (l *Lexer) readNumber() string {
	var sb strings.Builder
	if l.ch == '-' || l.ch == '+' {
		sb.WriteByte(l.ch)
		l.readChar()
	}
	seenDot := false
	for isDigit(l.ch) || (l.ch == '.' && !seenDot && isDigit(l.peekChar())) {
		if l.ch == '.' {
			seenDot = true
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	return sb.String()
}

// NextToken returns the next token in the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	var tok Token
	tok.Line = l.line
	tok.Column = l.column

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		tok.Literal = ""

	case '\n':
		tok.Type = TOKEN_NEWLINE
		tok.Literal = "\n"
		l.readChar()

	case '#':
		l.skipComment()
		return l.NextToken() // Skip comments and get next token

	case '=':
		tok.Type = TOKEN_ASSIGN
		tok.Literal = "="
		l.readChar()

	case ',':
		tok.Type = TOKEN_COMMA
		tok.Literal = ","
		l.readChar()

	case '"', '\'', '`':
		quote := l.ch
		tok.Type = TOKEN_STRING
		tok.Literal = l.readString(quote)

	default:
		switch {
		case isDigit(l.ch), (l.ch == '-' || l.ch == '+' || l.ch == '.') && isDigit(l.peekChar()):
			num := l.readNumber()

			// A letter right after the number makes it a duration (500ms, 1.5s)
			if unicode.IsLetter(rune(l.ch)) {
				var unit strings.Builder
				for unicode.IsLetter(rune(l.ch)) {
					unit.WriteByte(l.ch)
					l.readChar()
				}
				tok.Type = TOKEN_DURATION
				tok.Literal = num + unit.String()
			} else {
				tok.Type = TOKEN_NUMBER
				tok.Literal = num
			}
		case isIdentifierChar(l.ch):
			literal := l.readIdentifier()
			tok.Type = LookupKeyword(literal)
			tok.Literal = literal
		default:
			tok.Type = TOKEN_ILLEGAL
			tok.Literal = string(l.ch)
			l.readChar()
		}
	}

	return tok
}

// isDigit returns true if ch is a digit
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentifierChar returns true if ch is valid in an identifier
func isIdentifierChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || isDigit(ch) || ch == '_' || ch == '-'
}

// Tokenize returns all tokens from the input (useful for testing)
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}
