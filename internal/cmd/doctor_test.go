package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "(unset)"},
		{"abc", "***"},
		{"re_test_1234567", "re_t***********"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSecret(tt.in))
		})
	}
}

func TestMaskSecretNeverEchoesFullValue(t *testing.T) {
	secret := "re_live_supersecretvalue"
	masked := maskSecret(secret)
	assert.False(t, strings.Contains(masked, secret[4:]))
}
