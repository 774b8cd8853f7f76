package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"test@xemob.com", "test@xemob.com"},
		{"test@XEMOB.COM", "test@xemob.com"},
		{"  Test@Xemob.Com  ", "test@xemob.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"test@xemob.com", true},
		{"user+tag@example.org", true},
		{"user@localhost", true},
		{"", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"User Name <user@example.com>", false},
		{" user@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://xemob.com", true},
		{"http://ngo.example.org/about", true},
		{"ftp://files.example.org", false},
		{"xemob.com", false},
		{"https://", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.raw))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "I'm a super web designer.", "I'm a super web designer."},
		{"trims", "  Pablo \n", "Pablo"},
		{"comparison without spaces", "if a<b and c>d", "if a<b and c>d"},
		{"tight comparison", "a<b", "a<b"},
		{"entities stay encoded", "&lt;b&gt;bold&lt;/b&gt;", "&lt;b&gt;bold&lt;/b&gt;"},
		{"markup kept verbatim", "<b>Bold</b> claim", "<b>Bold</b> claim"},
		{"ampersand", "Fish & chips", "Fish & chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}
