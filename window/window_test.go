package window_test

import (
	"testing"

	"github.com/libreskies/libreskies/window"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want window.Backend
	}{
		{"sdl", window.SDL},
		{"SDL", window.SDL},
		{" glfw ", window.GLFW},
	} {
		got, err := window.ParseBackend(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}

	_, err := window.ParseBackend("wayland")
	require.Error(t, err)
}

func TestUnknownBackend(t *testing.T) {
	_, _, err := window.Init("x11")
	require.Error(t, err)

	_, err = window.New("x11", window.Configuration{})
	require.Error(t, err)
}
