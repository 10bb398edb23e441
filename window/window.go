// Package window adapts windowing libraries to what the engine needs:
// a window to present to and a way to pump its events.
package window

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/libreskies/libreskies/device"
)

// Backend names a windowing library
type Backend string

// Supported backends
const (
	SDL  Backend = "sdl"
	GLFW Backend = "glfw"
)

// ParseBackend returns the Backend for name, case insensitive.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case SDL, GLFW:
		return b, nil
	default:
		return "", fmt.Errorf("unknown window backend %q", name)
	}
}

// Configuration describes the window to create
type Configuration struct {
	Title  string
	Width  int
	Height int
}

// Window is a presentable window with an event pump.
// All methods must be called from the main thread.
type Window interface {
	device.Window

	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool

	// PollEvents processes pending window events without blocking.
	PollEvents()

	// Destroy destroys the window.
	Destroy()
}

// Init initialises the backend library. It returns the backend's
// vkGetInstanceProcAddr and a function that shuts the library down.
func Init(backend Backend) (unsafe.Pointer, func(), error) {
	switch backend {
	case SDL:
		return initSDL()
	case GLFW:
		return initGLFW()
	default:
		return nil, nil, fmt.Errorf("unknown window backend %q", backend)
	}
}

// New creates a window with the given backend, which must be initialised.
func New(backend Backend, cfg Configuration) (Window, error) {
	switch backend {
	case SDL:
		return newSDLWindow(cfg)
	case GLFW:
		return newGLFWWindow(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", backend)
	}
}
