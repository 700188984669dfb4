package script

import (
	"testing"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "Sleep with duration",
			input:    "Sleep 500ms",
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Decimal seconds",
			input:    "Sleep 1.5s",
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Window id as string",
			input:    `Focus "music"`,
			expected: []TokenType{TOKEN_FOCUS, TOKEN_STRING, TOKEN_EOF},
		},
		{
			name:  "Vector with negatives and decimals",
			input: "Move a -1.5,2,.5",
			expected: []TokenType{
				TOKEN_MOVE, TOKEN_IDENTIFIER,
				TOKEN_NUMBER, TOKEN_COMMA, TOKEN_NUMBER, TOKEN_COMMA, TOKEN_NUMBER,
				TOKEN_EOF,
			},
		},
		{
			name:  "Key value option",
			input: `NewWindow Title="Music Player" DisableTiling=true`,
			expected: []TokenType{
				TOKEN_NEW_WINDOW,
				TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_STRING,
				TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_TRUE,
				TOKEN_EOF,
			},
		},
		{
			name:     "Layout mode",
			input:    "Tile cockpit AdjustScale=false",
			expected: []TokenType{TOKEN_TILE, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_FALSE, TOKEN_EOF},
		},
		{
			name:     "Multiple commands",
			input:    "Recalculate\nReset\nResetInFront",
			expected: []TokenType{TOKEN_RECALCULATE, TOKEN_NEWLINE, TOKEN_RESET, TOKEN_NEWLINE, TOKEN_RESET_IN_FRONT, TOKEN_EOF},
		},
		{
			name:     "Comment",
			input:    "# This is a comment\nPrint",
			expected: []TokenType{TOKEN_NEWLINE, TOKEN_PRINT, TOKEN_EOF},
		},
		{
			name:     "Trailing comment",
			input:    "Debug true # verbose",
			expected: []TokenType{TOKEN_DEBUG, TOKEN_TRUE, TOKEN_EOF},
		},
		{
			name:     "Resize",
			input:    `ReportSize "clock" 640 480`,
			expected: []TokenType{TOKEN_REPORT_SIZE, TOKEN_STRING, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Illegal character",
			input:    "Print @",
			expected: []TokenType{TOKEN_PRINT, TOKEN_ILLEGAL, TOKEN_EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Errorf("Expected %d tokens, got %d", len(tt.expected), len(tokens))
				for i, tok := range tokens {
					t.Logf("  Token %d: %v (%q)", i, tok.Type, tok.Literal)
				}
				return
			}

			for i, expected := range tt.expected {
				if tokens[i].Type != expected {
					t.Errorf("Token %d: expected %v, got %v (%q)", i, expected, tokens[i].Type, tokens[i].Literal)
				}
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tokens := Tokenize(`Move "win-1" -1.5,2,.5`)
	want := []string{"Move", "win-1", "-1.5", ",", "2", ",", ".5", ""}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, lit := range want {
		if tokens[i].Literal != lit {
			t.Errorf("Token %d: expected literal %q, got %q", i, lit, tokens[i].Literal)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tokens := Tokenize(`NewWindow Title="say \"hi\"\tnow"`)
	str := tokens[3]
	if str.Type != TOKEN_STRING {
		t.Fatalf("Expected STRING, got %v", str.Type)
	}
	if str.Literal != "say \"hi\"\tnow" {
		t.Errorf("Unexpected string literal %q", str.Literal)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokenize("Print\n  Focus x")
	// Print, NEWLINE, Focus, x, EOF
	focus := tokens[2]
	if focus.Type != TOKEN_FOCUS {
		t.Fatalf("Expected Focus, got %v", focus.Type)
	}
	if focus.Line != 2 || focus.Column != 3 {
		t.Errorf("Expected Focus at 2:3, got %d:%d", focus.Line, focus.Column)
	}
	if tokens[1].Line != 1 {
		t.Errorf("Newline should belong to line 1, got %d", tokens[1].Line)
	}
}
