package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger := Logger()
	require.NotNil(t, logger)

	// Should be safe to use
	logger.Info("test message")
}

func TestMaskCPF(t *testing.T) {
	tests := []struct {
		name     string
		cpf      string
		expected string
	}{
		{
			name:     "normalized CPF",
			cpf:      "12345678901",
			expected: "123.***.789-**",
		},
		{
			name:     "punctuated CPF",
			cpf:      "529.982.247-25",
			expected: "529.***.247-**",
		},
		{
			name:     "CPF too short",
			cpf:      "123456789",
			expected: "***.***.***-**",
		},
		{
			name:     "empty",
			cpf:      "",
			expected: "***.***.***-**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskCPF(tt.cpf))
		})
	}
}
