package window

import (
	"unsafe"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vulkan-go/glfw/v3.3/glfw"
)

func initGLFW() (unsafe.Pointer, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw.Init()")
	}

	if !glfw.VulkanSupported() {
		log.Warn("GLFW reports Vulkan not supported on this system")
	}

	return glfw.GetVulkanGetInstanceProcAddress(), glfw.Terminate, nil
}

func newGLFWWindow(cfg Configuration) (Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw.CreateWindow()")
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return &glfwWindow{window: window}, nil
}

type glfwWindow struct {
	window *glfw.Window
}

func (w *glfwWindow) RequiredInstanceExtensions() []string {
	return w.window.GetRequiredInstanceExtensions()
}

func (w *glfwWindow) CreateSurface(instance interface{}) (uintptr, error) {
	return w.window.CreateWindowSurface(instance, nil)
}

func (w *glfwWindow) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *glfwWindow) Destroy() {
	w.window.Destroy()
}
