package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseScene(t *testing.T) {
	input := `# a small scene
Camera Position=0,1.6,0 FOV=75 Aspect=1.6

NewWindow "music" Title="Music Player" Position=-1.5,0,-3 Scale=2 DisableTiling=true
NewWindow clock
Sleep 1.5s
Tile cockpit AdjustScale=true
Resize "music" 640 480
Print
`
	cmds, err := ParseString(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantTypes := []CommandType{
		CommandType_Camera,
		CommandType_NewWindow,
		CommandType_NewWindow,
		CommandType_Sleep,
		CommandType_Tile,
		CommandType_Resize,
		CommandType_Print,
	}
	if len(cmds) != len(wantTypes) {
		t.Fatalf("Expected %d commands, got %d", len(wantTypes), len(cmds))
	}
	for i, want := range wantTypes {
		if cmds[i].Type != want {
			t.Errorf("Command %d: expected %v, got %v", i, want, cmds[i].Type)
		}
	}

	music := cmds[1]
	if music.Line != 4 {
		t.Errorf("Expected NewWindow on line 4, got %d", music.Line)
	}
	if len(music.Args) != 1 || music.Args[0] != "music" {
		t.Errorf("Unexpected args %v", music.Args)
	}
	wantOpts := map[string]string{
		"Title":         "Music Player",
		"Position":      "-1.5,0,-3",
		"Scale":         "2",
		"DisableTiling": "true",
	}
	for k, v := range wantOpts {
		if got, ok := music.Option(k); !ok || got != v {
			t.Errorf("Option %s: expected %q, got %q (set=%v)", k, v, got, ok)
		}
	}

	if cmds[3].Delay != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s sleep, got %v", cmds[3].Delay)
	}
	if cmds[4].Args[0] != "cockpit" {
		t.Errorf("Expected cockpit, got %v", cmds[4].Args)
	}
	if cmds[0].String() != "Camera Position=0,1.6,0 FOV=75 Aspect=1.6" {
		t.Errorf("Unexpected raw text %q", cmds[0].String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown layout mode", "Print\nTile spiral", "line 2"},
		{"none is not a layout", "Tile none", "unknown layout mode"},
		{"missing window id", "Focus", "expects window id"},
		{"too many arguments", `Focus "a" "b"`, "got 2 argument"},
		{"sleep needs a duration", "Sleep 500", "expected duration"},
		{"short vector", `Move "a" 1,2`, "expected x,y,z"},
		{"unknown option", `NewWindow Colour=red`, `does not accept option "Colour"`},
		{"duplicate option", `NewWindow Title=a Title=b`, "given twice"},
		{"bool option", `NewWindow Selectable=yes`, "true or false"},
		{"unknown command", "Jump 3", "unexpected token"},
		{"dangling comma", `Move "a" 1,2,`, "expected number after comma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	p := NewParser(New("Tile spiral\nPrint\nSleep nope\nReset"))
	cmds := p.Parse()

	if len(cmds) != 2 {
		t.Fatalf("Expected 2 valid commands, got %d", len(cmds))
	}
	if cmds[0].Type != CommandType_Print || cmds[1].Type != CommandType_Reset {
		t.Errorf("Unexpected commands %v %v", cmds[0].Type, cmds[1].Type)
	}

	errs := p.Errors()
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %v", errs)
	}
	if !strings.HasPrefix(errs[0], "line 1:") || !strings.HasPrefix(errs[1], "line 3:") {
		t.Errorf("Errors should carry line numbers: %v", errs)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.swm")
	if err := os.WriteFile(path, []byte("NewWindow a\nTile grid\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmds, err := ParseFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cmds) != 2 {
		t.Errorf("Expected 2 commands, got %d", len(cmds))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.swm")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestValueParsers(t *testing.T) {
	if v, err := ParseScale("2"); err != nil || v[0] != 2 || v[1] != 2 || v[2] != 2 {
		t.Errorf("Uniform scale: got %v, %v", v, err)
	}
	if v, err := ParseVec3("1, -2, 3.5"); err != nil || v[1] != -2 || v[2] != 3.5 {
		t.Errorf("Vector: got %v, %v", v, err)
	}
	if _, err := ParseVec3("1,x,3"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	if _, err := ParseDuration("-1s"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Negative durations should be rejected, got %v", err)
	}
	if _, err := ParseBool("TRUE"); err == nil {
		t.Error("Bools are lowercase keywords")
	}
}

func TestOptionNames(t *testing.T) {
	got := CommandType_Camera.OptionNames()
	want := []string{"Aspect", "FOV", "Position", "Rotation"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if len(CommandType_Print.OptionNames()) != 0 {
		t.Error("Print takes no options")
	}
}
