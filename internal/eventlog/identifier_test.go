package eventlog

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodePath(t *testing.T) {
	assert.Equal(t, "-work-my-app", EncodePath("/work/my/app"))
	assert.Equal(
		t, "C:-work-app", EncodePath(`C:\work\app`),
	)
}

func TestDecodeIdentifier(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("separator differs")
	}
	assert.Equal(t, "/work/my/app", DecodeIdentifier("-work-my-app"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Round-trips only for paths without hyphens in names; the
	// encoding is lossy by contract.
	p := filepath.Join(string(filepath.Separator), "work", "app")
	assert.Equal(t, p, DecodeIdentifier(EncodePath(p)))

	lossy := "/work/my-app"
	decoded := DecodeIdentifier(EncodePath(lossy))
	assert.Equal(
		t, strings.Count(lossy, "-")+strings.Count(lossy, "/"),
		strings.Count(decoded, "/"),
	)
}
