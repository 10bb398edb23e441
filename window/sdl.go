package window

import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

func initSDL() (unsafe.Pointer, func(), error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, nil, errors.Wrap(err, "sdl.Init()")
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, nil, errors.Wrap(err, "sdl.VulkanLoadLibrary()")
	}

	return sdl.VulkanGetVkGetInstanceProcAddr(), func() {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
	}, nil
}

func newSDLWindow(cfg Configuration) (Window, error) {
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, errors.Wrap(err, "sdl.CreateWindow()")
	}
	return &sdlWindow{window: window}, nil
}

type sdlWindow struct {
	window *sdl.Window
	closed bool
}

func (w *sdlWindow) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *sdlWindow) CreateSurface(instance interface{}) (uintptr, error) {
	surface, err := w.window.VulkanCreateSurface(instance)
	if err != nil {
		return 0, err
	}
	return uintptr(surface), nil
}

func (w *sdlWindow) ShouldClose() bool {
	return w.closed
}

func (w *sdlWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				w.closed = true
			}
		case *sdl.QuitEvent:
			w.closed = true
		}
	}
}

func (w *sdlWindow) Destroy() {
	w.window.Destroy()
}
