package script

// TokenType represents the type of a token in a scene script
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_ASSIGN TokenType = "ASSIGN"
	TOKEN_COMMA  TokenType = "COMMA"

	// Commands - Scene
	TOKEN_CAMERA TokenType = "Camera"
	TOKEN_SLEEP  TokenType = "Sleep"
	TOKEN_PRINT  TokenType = "Print"
	TOKEN_DEBUG  TokenType = "Debug"

	// Commands - Window lifecycle
	TOKEN_NEW_WINDOW  TokenType = "NewWindow"
	TOKEN_FOCUS       TokenType = "Focus"
	TOKEN_UNFOCUS     TokenType = "Unfocus"
	TOKEN_MINIMIZE    TokenType = "Minimize"
	TOKEN_MAXIMIZE    TokenType = "Maximize"
	TOKEN_CLOSE       TokenType = "Close"
	TOKEN_REMOVE      TokenType = "Remove"
	TOKEN_SELECT      TokenType = "Select"
	TOKEN_MOVE        TokenType = "Move"
	TOKEN_RESIZE      TokenType = "Resize"
	TOKEN_REPORT_SIZE TokenType = "ReportSize"

	// Commands - Layout
	TOKEN_TILE           TokenType = "Tile"
	TOKEN_RECALCULATE    TokenType = "Recalculate"
	TOKEN_RESET          TokenType = "Reset"
	TOKEN_RESET_IN_FRONT TokenType = "ResetInFront"

	// Keywords
	TOKEN_TRUE  TokenType = "true"
	TOKEN_FALSE TokenType = "false"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type starts a command
func (tt TokenType) IsCommand() bool {
	switch tt {
	case TOKEN_CAMERA, TOKEN_SLEEP, TOKEN_PRINT, TOKEN_DEBUG,
		TOKEN_NEW_WINDOW, TOKEN_FOCUS, TOKEN_UNFOCUS, TOKEN_MINIMIZE, TOKEN_MAXIMIZE,
		TOKEN_CLOSE, TOKEN_REMOVE, TOKEN_SELECT, TOKEN_MOVE, TOKEN_RESIZE, TOKEN_REPORT_SIZE,
		TOKEN_TILE, TOKEN_RECALCULATE, TOKEN_RESET, TOKEN_RESET_IN_FRONT:
		return true
	}
	return false
}

// IsBool returns true for the true/false keywords
func (tt TokenType) IsBool() bool {
	return tt == TOKEN_TRUE || tt == TOKEN_FALSE
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	// Scene
	"Camera": TOKEN_CAMERA,
	"Sleep":  TOKEN_SLEEP,
	"Print":  TOKEN_PRINT,
	"Debug":  TOKEN_DEBUG,

	// Window lifecycle
	"NewWindow":  TOKEN_NEW_WINDOW,
	"Focus":      TOKEN_FOCUS,
	"Unfocus":    TOKEN_UNFOCUS,
	"Minimize":   TOKEN_MINIMIZE,
	"Maximize":   TOKEN_MAXIMIZE,
	"Close":      TOKEN_CLOSE,
	"Remove":     TOKEN_REMOVE,
	"Select":     TOKEN_SELECT,
	"Move":       TOKEN_MOVE,
	"Resize":     TOKEN_RESIZE,
	"ReportSize": TOKEN_REPORT_SIZE,

	// Layout
	"Tile":         TOKEN_TILE,
	"Recalculate":  TOKEN_RECALCULATE,
	"Reset":        TOKEN_RESET,
	"ResetInFront": TOKEN_RESET_IN_FRONT,

	// Literals
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
