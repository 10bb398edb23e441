package device_test

import (
	"errors"
	"fmt"

	"github.com/libreskies/libreskies/device"
)

type fakeWindow struct {
	extensions []string
	surfaces   int
}

func (w *fakeWindow) RequiredInstanceExtensions() []string {
	return w.extensions
}

func (w *fakeWindow) CreateSurface(instance interface{}) (uintptr, error) {
	w.surfaces++
	return uintptr(0x5000 + w.surfaces), nil
}

type fakeGPU struct {
	name     string
	families []device.QueueFamily
	// present lists the family indices that can present
	present map[uint32]bool
}

// fakeDriver records every call it receives and counts
// created and destroyed objects per kind.
type fakeDriver struct {
	gpus []fakeGPU

	failInstance error
	failSurface  error
	failEnum     error
	failDevice   error
	failIdle     error

	calls     []string
	created   map[string]int
	destroyed map[string]int

	lastInstanceInfo device.InstanceCreateInfo
	lastDeviceInfo   device.DeviceCreateInfo
	lastDeviceGPU    device.PhysicalDevice
	next             uint64
}

func newFakeDriver(gpus ...fakeGPU) *fakeDriver {
	return &fakeDriver{
		gpus:      gpus,
		created:   make(map[string]int),
		destroyed: make(map[string]int),
		next:      100,
	}
}

func (d *fakeDriver) record(format string, args ...interface{}) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDriver) handle() uint64 {
	d.next++
	return d.next
}

func (d *fakeDriver) gpu(pd device.PhysicalDevice) (fakeGPU, bool) {
	idx := int(pd) - 1
	if idx < 0 || idx >= len(d.gpus) {
		return fakeGPU{}, false
	}
	return d.gpus[idx], true
}

func (d *fakeDriver) CreateInstance(info device.InstanceCreateInfo) (device.Instance, error) {
	d.record("CreateInstance")
	d.lastInstanceInfo = info
	if d.failInstance != nil {
		return 0, d.failInstance
	}
	d.created["instance"]++
	return device.Instance(d.handle()), nil
}

func (d *fakeDriver) CreateSurface(instance device.Instance, window device.Window) (device.Surface, error) {
	d.record("CreateSurface")
	if d.failSurface != nil {
		return 0, d.failSurface
	}
	if _, err := window.CreateSurface(instance); err != nil {
		return 0, err
	}
	d.created["surface"]++
	return device.Surface(d.handle()), nil
}

func (d *fakeDriver) EnumeratePhysicalDevices(instance device.Instance) ([]device.PhysicalDevice, error) {
	d.record("EnumeratePhysicalDevices")
	if d.failEnum != nil {
		return nil, d.failEnum
	}
	var gpus []device.PhysicalDevice
	for i := range d.gpus {
		gpus = append(gpus, device.PhysicalDevice(i+1))
	}
	return gpus, nil
}

func (d *fakeDriver) QueueFamilies(pd device.PhysicalDevice) []device.QueueFamily {
	d.record("QueueFamilies(%d)", pd)
	gpu, _ := d.gpu(pd)
	return gpu.families
}

func (d *fakeDriver) SurfaceSupport(pd device.PhysicalDevice, family uint32, surface device.Surface) (bool, error) {
	d.record("SurfaceSupport(%d,%d)", pd, family)
	gpu, ok := d.gpu(pd)
	if !ok {
		return false, errors.New("unknown gpu")
	}
	return gpu.present[family], nil
}

func (d *fakeDriver) DeviceInfo(pd device.PhysicalDevice) device.PhysicalDeviceInfo {
	gpu, ok := d.gpu(pd)
	return device.PhysicalDeviceInfo{
		ID:      int(pd),
		Name:    gpu.name,
		Invalid: !ok,
		Type:    device.TypeDiscreteGPU,
	}
}

func (d *fakeDriver) CreateDevice(pd device.PhysicalDevice, info device.DeviceCreateInfo) (device.Device, error) {
	d.record("CreateDevice(%d)", pd)
	d.lastDeviceGPU = pd
	d.lastDeviceInfo = info
	if d.failDevice != nil {
		return 0, d.failDevice
	}
	d.created["device"]++
	return device.Device(d.handle()), nil
}

func (d *fakeDriver) DeviceQueue(dev device.Device, family, index uint32) device.Queue {
	d.record("DeviceQueue(%d,%d)", family, index)
	return device.Queue(d.handle())
}

func (d *fakeDriver) DeviceWaitIdle(dev device.Device) error {
	d.record("DeviceWaitIdle")
	return d.failIdle
}

func (d *fakeDriver) DestroyDevice(dev device.Device) {
	d.record("DestroyDevice")
	d.destroyed["device"]++
}

func (d *fakeDriver) DestroySurface(instance device.Instance, surface device.Surface) {
	d.record("DestroySurface")
	d.destroyed["surface"]++
}

func (d *fakeDriver) DestroyInstance(instance device.Instance) {
	d.record("DestroyInstance")
	d.destroyed["instance"]++
}

// releases returns the recorded destroy calls in order.
func (d *fakeDriver) releases() []string {
	var out []string
	for _, c := range d.calls {
		switch c {
		case "DestroyDevice", "DestroySurface", "DestroyInstance":
			out = append(out, c)
		}
	}
	return out
}

func (d *fakeDriver) leaked() map[string]int {
	leaks := make(map[string]int)
	for kind, n := range d.created {
		if diff := n - d.destroyed[kind]; diff != 0 {
			leaks[kind] = diff
		}
	}
	return leaks
}

func graphicsPresentGPU(name string) fakeGPU {
	return fakeGPU{
		name: name,
		families: []device.QueueFamily{
			{Index: 0, Flags: device.QueueGraphics | device.QueueCompute | device.QueueTransfer, Count: 16},
		},
		present: map[uint32]bool{0: true},
	}
}
