package domain

import "testing"

func TestFileFilterPatterns(t *testing.T) {
	f := FileFilter{DisplayName: "JSON", Extensions: []string{"json", ".wbs"}}
	got := f.Patterns()
	want := []string{"*.json", "*.wbs"}
	if len(got) != len(want) {
		t.Fatalf("Patterns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Patterns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseMessageKind(t *testing.T) {
	tests := []struct {
		input string
		want  MessageKind
	}{
		{"info", MessageInfo},
		{"warning", MessageWarning},
		{"warn", MessageWarning},
		{"ERROR", MessageError},
		{"", MessageInfo},
		{"question", MessageInfo},
	}
	for _, tt := range tests {
		if got := ParseMessageKind(tt.input); got != tt.want {
			t.Errorf("ParseMessageKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
