// Package device selects a rendering device and sets up the logical device
// and queue that the rest of the engine submits work to. Driver access goes
// through the Driver interface, the Vulkan implementation lives in
// device/vulkan.
package device

import "math"

// Opaque handles to driver owned objects. The zero value means unset.
type (
	Instance       uint64
	Surface        uint64
	PhysicalDevice uint64
	Device         uint64
	Queue          uint64
)

// NoQueueFamily marks a queue family index that has not been selected.
const NoQueueFamily uint32 = math.MaxUint32

// QueueFlags describes the capabilities of a queue family.
type QueueFlags uint32

// Queue capability bits, same values as VkQueueFlagBits
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// Has reports whether all bits of f are set.
func (q QueueFlags) Has(f QueueFlags) bool {
	return q&f == f
}

// QueueFamily is a group of queues on a physical device
// sharing the same capabilities.
type QueueFamily struct {
	Index uint32
	Flags QueueFlags
	Count uint32
}

// PhysicalDeviceType mirrors VkPhysicalDeviceType.
type PhysicalDeviceType int

// Device types
const (
	TypeOther PhysicalDeviceType = iota
	TypeIntegratedGPU
	TypeDiscreteGPU
	TypeVirtualGPU
	TypeCPU
)

func (t PhysicalDeviceType) String() string {
	switch t {
	case TypeIntegratedGPU:
		return "integrated"
	case TypeDiscreteGPU:
		return "discrete"
	case TypeVirtualGPU:
		return "virtual"
	case TypeCPU:
		return "cpu"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t PhysicalDeviceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	APIVersion    uint32
	Name          string
	Type          PhysicalDeviceType
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint64
	QueueFamilies []QueueFamily
}

// InstanceCreateInfo is what the driver needs to create an API instance.
type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
	Extensions         []string
	Layers             []string
}

// DeviceCreateInfo describes the logical device to create.
type DeviceCreateInfo struct {
	QueueFamily     uint32
	QueuePriorities []float32
	Extensions      []string
	Layers          []string
}

// Window is the part of the windowing layer needed to present to a window.
type Window interface {
	// RequiredInstanceExtensions lists the instance extensions
	// the window system needs for presentation.
	RequiredInstanceExtensions() []string

	// CreateSurface creates a presentation surface for the window,
	// instance is the raw handle of the underlying API.
	CreateSurface(instance interface{}) (uintptr, error)
}

// Driver is the graphics API as seen by device selection.
// Calls are synchronous and must come from a single goroutine.
type Driver interface {
	CreateInstance(info InstanceCreateInfo) (Instance, error)
	CreateSurface(instance Instance, window Window) (Surface, error)
	EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, error)
	QueueFamilies(gpu PhysicalDevice) []QueueFamily
	SurfaceSupport(gpu PhysicalDevice, family uint32, surface Surface) (bool, error)
	DeviceInfo(gpu PhysicalDevice) PhysicalDeviceInfo
	CreateDevice(gpu PhysicalDevice, info DeviceCreateInfo) (Device, error)
	DeviceQueue(device Device, family, index uint32) Queue
	DeviceWaitIdle(device Device) error

	DestroyDevice(device Device)
	DestroySurface(instance Instance, surface Surface)
	DestroyInstance(instance Instance)
}

// MakeVersion packs a version number the way VK_MAKE_VERSION does.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}
