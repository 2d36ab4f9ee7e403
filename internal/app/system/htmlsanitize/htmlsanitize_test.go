package htmlsanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Buy milk tomorrow", "Buy milk tomorrow"},
		{"script stripped", `Hello <script>alert("x")</script>world`, "Helloworld"},
		{"tags stripped", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"anchor text kept", `see <a href="http://evil.test">this</a>`, "see this"},
		{"whitespace trimmed", "  note  ", "note"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
