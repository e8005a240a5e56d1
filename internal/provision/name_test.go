package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		wantKind Kind
	}{
		{"simple name", "myproj", "myproj", ""},
		{"trims whitespace", "  myproj  ", "myproj", ""},
		{"nested path keeps basename", "team/myproj", "myproj", ""},
		{"single trailing separator tolerated", "myproj/", "myproj", ""},
		{"hyphens and dots allowed", "my-proj.v2", "my-proj.v2", ""},

		{"empty", "", "", KindInvalidName},
		{"whitespace only", "   ", "", KindInvalidName},
		{"dot", ".", "", KindInvalidName},
		{"dotdot", "..", "", KindInvalidName},
		{"separator only", "/", "", KindInvalidName},

		{"leading traversal", "../myproj", "", KindTraversalAttempt},
		{"embedded traversal", "a/../b", "", KindTraversalAttempt},
		{"backslash traversal", `a\..\b`, "", KindTraversalAttempt},
		{"windows leading traversal", `..\myproj`, "", KindTraversalAttempt},
		{"double separator", "a//b", "", KindTraversalAttempt},
		{"embedded dot segment", "a/./b", "", KindTraversalAttempt},
		// The basename check runs first, so a trailing parent
		// reference reads as an invalid name, not traversal.
		{"trailing dotdot", "myproj/..", "", KindInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.raw)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateNameErrorMentionsInput(t *testing.T) {
	_, err := ValidateName("../escape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "../escape")
}
