package routing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeveloperPath_RoundTrip(t *testing.T) {
	for _, name := range []string{"Godrej Properties", "L&T Realty", "Sobha/Ltd", "Unlisted Developer", "Prestige 100%"} {
		path := DeveloperPath(name)
		require.NotContains(t, path[len("/developers/"):], "/")
		require.Equal(t, name, Segment(path[len("/developers/"):]))
	}
}

func TestDeveloperPath_Encodes(t *testing.T) {
	require.Equal(t, "/developers/Godrej%20Properties", DeveloperPath("Godrej Properties"))
	require.Equal(t, "/developers/Sobha%2FLtd", DeveloperPath("Sobha/Ltd"))
}

func TestProjectPath(t *testing.T) {
	require.Equal(t, "/projects/abc-123", ProjectPath("abc-123"))
}

func TestSegment_BadEscape(t *testing.T) {
	require.Equal(t, "100%zz", Segment("100%zz"))
}
