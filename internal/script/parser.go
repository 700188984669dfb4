package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
)

// ErrParse wraps every error returned from ParseFile and ParseString.
var ErrParse = errors.New("parse script")

// Parser parses scene scripts into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// rawValue is a value as written in the script, before conversion.
type rawValue struct {
	text string
	tok  TokenType
	list bool
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses the entire script and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		// Skip newlines
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if !ok {
			p.skipToNextLine()
			continue
		}

		commands = append(commands, cmd)
	}

	return commands
}

// parseCommand parses a single command line
func (p *Parser) parseCommand() (Command, bool) {
	cmd := Command{
		Type:   CommandType(p.curTok.Type),
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}

	if !p.curTok.Type.IsCommand() {
		p.addError(fmt.Sprintf("unexpected token: %v %q", p.curTok.Type, p.curTok.Literal))
		return cmd, false
	}

	spec := commandSpecs[cmd.Type]
	raw := []string{p.curTok.Literal}
	p.nextToken() // consume command keyword

	var args []rawValue
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		// Key=Value option
		if p.curTok.Type == TOKEN_IDENTIFIER && p.peekTok.Type == TOKEN_ASSIGN {
			key := p.curTok.Literal
			p.nextToken() // key
			p.nextToken() // =
			val, ok := p.parseValue()
			if !ok {
				return cmd, false
			}
			kind, known := spec.options[key]
			if !known {
				p.addError(fmt.Sprintf("%s does not accept option %q", cmd.Type, key))
				return cmd, false
			}
			if _, dup := cmd.Options[key]; dup {
				p.addError(fmt.Sprintf("%s option %q given twice", cmd.Type, key))
				return cmd, false
			}
			if err := p.checkValue(kind, val); err != nil {
				p.addError(fmt.Sprintf("%s option %s: %v", cmd.Type, key, err))
				return cmd, false
			}
			if cmd.Options == nil {
				cmd.Options = make(map[string]string)
			}
			cmd.Options[key] = val.text
			raw = append(raw, key+"="+quoteIfNeeded(val))
			continue
		}

		val, ok := p.parseValue()
		if !ok {
			return cmd, false
		}
		args = append(args, val)
		raw = append(raw, quoteIfNeeded(val))
	}

	if len(args) < spec.required || len(args) > len(spec.args) {
		p.addError(fmt.Sprintf("%s expects %s, got %d argument(s)", cmd.Type, describeArgs(spec), len(args)))
		return cmd, false
	}

	for i, arg := range args {
		kind := spec.args[i]
		if err := p.checkValue(kind, arg); err != nil {
			p.addError(fmt.Sprintf("%s argument %d: %v", cmd.Type, i+1, err))
			return cmd, false
		}
		if kind == kindDuration {
			cmd.Delay, _ = ParseDuration(arg.text)
		}
		cmd.Args = append(cmd.Args, arg.text)
	}

	cmd.Raw = strings.Join(raw, " ")
	return cmd, true
}

// parseValue reads one value, joining comma separated numbers into a list.
func (p *Parser) parseValue() (rawValue, bool) {
	switch p.curTok.Type {
	case TOKEN_STRING, TOKEN_IDENTIFIER, TOKEN_NUMBER, TOKEN_DURATION, TOKEN_TRUE, TOKEN_FALSE:
	default:
		p.addError(fmt.Sprintf("unexpected token: %v %q", p.curTok.Type, p.curTok.Literal))
		return rawValue{}, false
	}

	val := rawValue{text: p.curTok.Literal, tok: p.curTok.Type}
	p.nextToken()

	if val.tok != TOKEN_NUMBER {
		return val, true
	}

	var sb strings.Builder
	sb.WriteString(val.text)
	for p.curTok.Type == TOKEN_COMMA {
		p.nextToken()
		if p.curTok.Type != TOKEN_NUMBER {
			p.addError(fmt.Sprintf("expected number after comma, got %v", p.curTok.Type))
			return rawValue{}, false
		}
		sb.WriteByte(',')
		sb.WriteString(p.curTok.Literal)
		val.list = true
		p.nextToken()
	}
	val.text = sb.String()
	return val, true
}

// checkValue validates a raw value against the kind a command expects.
func (p *Parser) checkValue(kind valueKind, val rawValue) error {
	mismatch := fmt.Errorf("expected %s, got %v %q", kind, val.tok, val.text)

	switch kind {
	case kindName, kindString:
		if val.list || (val.tok != TOKEN_STRING && val.tok != TOKEN_IDENTIFIER && val.tok != TOKEN_NUMBER) {
			return mismatch
		}
		if kind == kindName && val.text == "" {
			return errors.New("window id must not be empty")
		}
	case kindNumber:
		if val.tok != TOKEN_NUMBER || val.list {
			return mismatch
		}
		_, err := ParseNumber(val.text)
		return err
	case kindVec3:
		if val.tok != TOKEN_NUMBER {
			return mismatch
		}
		_, err := ParseVec3(val.text)
		return err
	case kindScale:
		if val.tok != TOKEN_NUMBER {
			return mismatch
		}
		_, err := ParseScale(val.text)
		return err
	case kindBool:
		if !val.tok.IsBool() {
			return mismatch
		}
	case kindDuration:
		if val.tok != TOKEN_DURATION {
			return mismatch
		}
		_, err := ParseDuration(val.text)
		return err
	case kindMode:
		if val.tok != TOKEN_IDENTIFIER && val.tok != TOKEN_STRING {
			return mismatch
		}
		mode, err := layout.ParseMode(val.text)
		if err != nil {
			return err
		}
		if mode == layout.None {
			return fmt.Errorf("%w: %q", layout.ErrUnknownMode, val.text)
		}
	}
	return nil
}

func describeArgs(spec commandSpec) string {
	if len(spec.args) == 0 {
		return "no arguments"
	}
	names := make([]string, len(spec.args))
	for i, kind := range spec.args {
		if i >= spec.required {
			names[i] = "[" + kind.String() + "]"
		} else {
			names[i] = kind.String()
		}
	}
	return strings.Join(names, ", ")
}

func quoteIfNeeded(val rawValue) string {
	if val.tok == TOKEN_STRING {
		return fmt.Sprintf("%q", val.text)
	}
	return val.text
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseString parses a scene script. Every problem found is reported in a
// single error wrapping ErrParse.
func ParseString(content string) ([]Command, error) {
	p := NewParser(New(content))
	commands := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return commands, fmt.Errorf("%w: %s", ErrParse, strings.Join(errs, "; "))
	}
	return commands, nil
}

// ParseFile reads and parses a scene script from disk.
func ParseFile(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseString(string(data))
}
