package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToLowerWithTrim(t *testing.T) {
	require.Equal(t, "debug", ToLowerWithTrim("  DEBUG "))
	require.Equal(t, "", ToLowerWithTrim("   "))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "plain name",
			input:   "jackal",
			wantErr: false,
		},
		{
			name:    "name with underscore and dash",
			input:   "turtlebot3_burger-v2",
			wantErr: false,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "  ",
			wantErr: true,
		},
		{
			name:    "nested path",
			input:   "robots/jackal",
			wantErr: true,
		},
		{
			name:    "parent directory",
			input:   "..",
			wantErr: true,
		},
		{
			name:    "windows separator",
			input:   `a\b`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
