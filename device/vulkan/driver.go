// Package vulkan implements device.Driver on top of the vulkan-go bindings.
package vulkan

import (
	"strings"
	"unsafe"

	"github.com/libreskies/libreskies/device"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// NewDriver loads the Vulkan entry points. procAddr is the
// vkGetInstanceProcAddr provided by the windowing layer,
// when nil the system loader is used.
func NewDriver(procAddr unsafe.Pointer) (*Driver, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}

	return &Driver{
		instances: newTable[vk.Instance](),
		surfaces:  newTable[vk.Surface](),
		gpus:      newTable[vk.PhysicalDevice](),
		devices:   newTable[vk.Device](),
		queues:    newTable[vk.Queue](),
	}, nil
}

// Driver talks to the Vulkan loader. It keeps a table per handle
// type so that the device package never sees binding types.
type Driver struct {
	instances *table[vk.Instance]
	surfaces  *table[vk.Surface]
	gpus      *table[vk.PhysicalDevice]
	devices   *table[vk.Device]
	queues    *table[vk.Queue]
}

// CreateInstance implements device.Driver
func (d *Driver) CreateInstance(info device.InstanceCreateInfo) (device.Instance, error) {
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(info.ApplicationName),
		ApplicationVersion: info.ApplicationVersion,
		PEngineName:        safeString(info.EngineName),
		EngineVersion:      info.EngineVersion,
		ApiVersion:         info.APIVersion,
	}

	extensions := safeStrings(info.Extensions)
	layers := safeStrings(info.Layers)
	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return 0, errors.Wrap(err, "vk.CreateInstance()")
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return 0, errors.Wrap(err, "vk.InitInstance()")
	}
	return device.Instance(d.instances.put(instance)), nil
}

// CreateSurface implements device.Driver
func (d *Driver) CreateSurface(instance device.Instance, window device.Window) (device.Surface, error) {
	inst, ok := d.instances.get(uint64(instance))
	if !ok {
		return 0, errors.New("unknown instance handle")
	}
	ptr, err := window.CreateSurface(inst)
	if err != nil {
		return 0, errors.Wrap(err, "window.CreateSurface()")
	}
	if ptr == 0 {
		return 0, errors.New("window.CreateSurface(): null surface")
	}
	return device.Surface(d.surfaces.put(vk.SurfaceFromPointer(ptr))), nil
}

// EnumeratePhysicalDevices implements device.Driver
func (d *Driver) EnumeratePhysicalDevices(instance device.Instance) ([]device.PhysicalDevice, error) {
	inst, ok := d.instances.get(uint64(instance))
	if !ok {
		return nil, errors.New("unknown instance handle")
	}

	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(inst, &deviceCount, nil)); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}
	if deviceCount == 0 {
		return nil, nil
	}
	available := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(inst, &deviceCount, available)); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}

	gpus := make([]device.PhysicalDevice, 0, deviceCount)
	for _, pd := range available[:deviceCount] {
		gpus = append(gpus, device.PhysicalDevice(d.gpus.putUnique(pd)))
	}
	return gpus, nil
}

// QueueFamilies implements device.Driver
func (d *Driver) QueueFamilies(gpu device.PhysicalDevice) []device.QueueFamily {
	pd, ok := d.gpus.get(uint64(gpu))
	if !ok {
		return nil
	}

	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, props)

	families := make([]device.QueueFamily, count)
	for i := range props[:count] {
		props[i].Deref()
		families[i] = device.QueueFamily{
			Index: uint32(i),
			Flags: device.QueueFlags(props[i].QueueFlags),
			Count: props[i].QueueCount,
		}
	}
	return families
}

// SurfaceSupport implements device.Driver
func (d *Driver) SurfaceSupport(gpu device.PhysicalDevice, family uint32, surface device.Surface) (bool, error) {
	pd, ok := d.gpus.get(uint64(gpu))
	if !ok {
		return false, errors.New("unknown physical device handle")
	}
	srf, ok := d.surfaces.get(uint64(surface))
	if !ok {
		return false, errors.New("unknown surface handle")
	}

	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(pd, family, srf, &supported)); err != nil {
		return false, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceSupport()")
	}
	return supported.B(), nil
}

// CreateDevice implements device.Driver
func (d *Driver) CreateDevice(gpu device.PhysicalDevice, info device.DeviceCreateInfo) (device.Device, error) {
	pd, ok := d.gpus.get(uint64(gpu))
	if !ok {
		return 0, errors.New("unknown physical device handle")
	}

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: info.QueueFamily,
		QueueCount:       uint32(len(info.QueuePriorities)),
		PQueuePriorities: info.QueuePriorities,
	}}

	extensions := safeStrings(info.Extensions)
	layers := safeStrings(info.Layers)
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var vkDevice vk.Device
	if err := vk.Error(vk.CreateDevice(pd, &dci, nil, &vkDevice)); err != nil {
		return 0, errors.Wrap(err, "vk.CreateDevice()")
	}
	return device.Device(d.devices.put(vkDevice)), nil
}

// DeviceQueue implements device.Driver
func (d *Driver) DeviceQueue(dev device.Device, family, index uint32) device.Queue {
	vkDevice, ok := d.devices.get(uint64(dev))
	if !ok {
		return 0
	}
	var queue vk.Queue
	vk.GetDeviceQueue(vkDevice, family, index, &queue)
	return device.Queue(d.queues.putUnique(queue))
}

// DeviceWaitIdle implements device.Driver
func (d *Driver) DeviceWaitIdle(dev device.Device) error {
	vkDevice, ok := d.devices.get(uint64(dev))
	if !ok {
		return errors.New("unknown device handle")
	}
	return errors.Wrap(vk.Error(vk.DeviceWaitIdle(vkDevice)), "vk.DeviceWaitIdle()")
}

// DestroyDevice implements device.Driver
func (d *Driver) DestroyDevice(dev device.Device) {
	if vkDevice, ok := d.devices.remove(uint64(dev)); ok {
		vk.DestroyDevice(vkDevice, nil)
	}
}

// DestroySurface implements device.Driver
func (d *Driver) DestroySurface(instance device.Instance, surface device.Surface) {
	inst, ok := d.instances.get(uint64(instance))
	if !ok {
		return
	}
	if srf, ok := d.surfaces.remove(uint64(surface)); ok {
		vk.DestroySurface(inst, srf, nil)
	}
}

// DestroyInstance implements device.Driver
func (d *Driver) DestroyInstance(instance device.Instance) {
	if inst, ok := d.instances.remove(uint64(instance)); ok {
		vk.DestroyInstance(inst, nil)
	}
}

func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}
