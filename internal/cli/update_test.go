package cli

import (
	"strings"
	"testing"
)

func TestReadUpdateBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line then blank",
			input: "finished the parser\n\n",
			want:  "finished the parser",
		},
		{
			name:  "multiple lines",
			input: "done: parser\ndoing: tests\n\n",
			want:  "done: parser\ndoing: tests",
		},
		{
			name:  "leading blank lines ignored",
			input: "\n\nactual update\n\n",
			want:  "actual update",
		},
		{
			name:  "eof without trailing blank",
			input: "no trailing newline",
			want:  "no trailing newline",
		},
		{
			name:  "only blank lines",
			input: "\n\n\n",
			want:  "",
		},
		{
			name:  "stops at first blank after content",
			input: "first\n\nsecond\n",
			want:  "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readUpdateBody(strings.NewReader(tt.input))
			if got != tt.want {
				t.Fatalf("readUpdateBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
