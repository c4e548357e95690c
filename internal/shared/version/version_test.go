package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := Version
	Version = v
	t.Cleanup(func() { Version = prev })
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
	assert.Equal(t, "", Normalize(""))
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		stamped string
		want    string
		release bool
	}{
		{"dev", "dev", false},
		{"1.4", "v1.4.0", true},
		{"v2.0.1-rc.1", "v2.0.1-rc.1", false},
		{"not-a-version", "dev", false},
	}
	for _, tt := range tests {
		t.Run(tt.stamped, func(t *testing.T) {
			withVersion(t, tt.stamped)
			assert.Equal(t, tt.want, Current())
			assert.Equal(t, tt.release, IsRelease())
		})
	}
}

func TestString(t *testing.T) {
	withVersion(t, "1.4.0")
	assert.Contains(t, String(), "inkwell v1.4.0")
}
