package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"Testing 123", "testing-123"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"Special@#Characters!", "specialcharacters"},
		{"---Dashes---", "dashes"},
		{"snake_case title", "snake_case-title"},
		{"  padded  ", "padded"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestMakeIsURLSafe(t *testing.T) {
	titles := []string{
		"Next.js App Router Guide",
		"C++ vs Go: a comparison?",
		"100% coverage -- worth it?",
		"  *** weird *** title ***  ",
	}

	for _, title := range titles {
		s := Make(title)
		assert.False(t, strings.HasPrefix(s, "-"), "slug %q has leading hyphen", s)
		assert.False(t, strings.HasSuffix(s, "-"), "slug %q has trailing hyphen", s)
		assert.NotContains(t, s, "--")
		for _, r := range s {
			ok := r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			assert.True(t, ok, "slug %q contains %q", s, r)
		}
	}
}
