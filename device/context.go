package device

import (
	log "github.com/sirupsen/logrus"
)

// Context holds everything created during device initialisation.
// It is owned by a single goroutine.
type Context struct {
	Instance            Instance
	PhysicalDevice      PhysicalDevice
	Device              Device
	Surface             Surface
	GraphicsQueueFamily uint32
	GraphicsQueue       Queue

	driver Driver
	log    log.FieldLogger
}

// Initialize creates an instance and a surface for window, selects the first
// physical device with a queue family that supports both graphics and
// presenting to that surface, then creates a logical device with a single
// queue from the family. Either a complete Context or an *InitError is
// returned, anything created before a failure is released again.
func Initialize(window Window, driver Driver, cfg Configuration) (*Context, error) {
	c := &Context{
		GraphicsQueueFamily: NoQueueFamily,
		driver:              driver,
		log:                 cfg.logger(),
	}
	if err := c.initialize(window, cfg); err != nil {
		c.Shutdown()
		return nil, err
	}
	return c, nil
}

func (c *Context) initialize(window Window, cfg Configuration) error {
	instance, err := c.driver.CreateInstance(cfg.instanceInfo(window.RequiredInstanceExtensions()))
	if err != nil {
		return stageError(ErrInstanceCreation, err)
	}
	c.Instance = instance

	surface, err := c.driver.CreateSurface(c.Instance, window)
	if err != nil {
		return stageError(ErrSurfaceCreation, err)
	}
	c.Surface = surface

	gpus, err := c.driver.EnumeratePhysicalDevices(c.Instance)
	if err != nil {
		return stageError(ErrNoDevice, err)
	}
	if len(gpus) == 0 {
		return stageError(ErrNoDevice, nil)
	}

	gpu, family, ok := SelectPhysicalDevice(c.driver, gpus, c.Surface)
	if !ok {
		return stageError(ErrNoSuitableDevice, nil)
	}
	c.PhysicalDevice, c.GraphicsQueueFamily = gpu, family

	dev, err := c.driver.CreateDevice(c.PhysicalDevice, DeviceCreateInfo{
		QueueFamily:     c.GraphicsQueueFamily,
		QueuePriorities: []float32{1.0},
		Extensions:      cfg.DeviceExtensions,
		Layers:          cfg.layers(),
	})
	if err != nil {
		return stageError(ErrDeviceCreation, err)
	}
	c.Device, c.GraphicsQueue = dev, c.driver.DeviceQueue(dev, c.GraphicsQueueFamily, 0)

	info := c.driver.DeviceInfo(c.PhysicalDevice)
	c.log.WithFields(log.Fields{
		"type":         info.Type,
		"queue_family": c.GraphicsQueueFamily,
	}).Infof("Vulkan GPU: %s", info.Name)
	return nil
}

// SelectPhysicalDevice walks gpus in order and returns the first one with a
// queue family that has graphics support and can present to surface, along
// with that family's index. Devices are not ranked.
func SelectPhysicalDevice(driver Driver, gpus []PhysicalDevice, surface Surface) (PhysicalDevice, uint32, bool) {
	for _, gpu := range gpus {
		if family, ok := findGraphicsPresentFamily(driver, gpu, surface); ok {
			return gpu, family, true
		}
	}
	return 0, NoQueueFamily, false
}

func findGraphicsPresentFamily(driver Driver, gpu PhysicalDevice, surface Surface) (uint32, bool) {
	for _, family := range driver.QueueFamilies(gpu) {
		if !family.Flags.Has(QueueGraphics) {
			continue
		}
		// a failed query counts as no present support
		if present, err := driver.SurfaceSupport(gpu, family.Index, surface); err == nil && present {
			return family.Index, true
		}
	}
	return NoQueueFamily, false
}

// Shutdown waits for the device to go idle and releases the logical device,
// the surface and the instance, in that order. Handles that are unset are
// skipped and released handles are cleared, so calling it more than once or
// on a partially set up Context is safe.
func (c *Context) Shutdown() {
	if c == nil || c.driver == nil {
		return
	}

	if c.Device != 0 {
		if err := c.driver.DeviceWaitIdle(c.Device); err != nil {
			c.log.WithError(err).Warn("device did not go idle before destruction")
		}
		c.driver.DestroyDevice(c.Device)
		c.Device, c.GraphicsQueue = 0, 0
	}
	c.PhysicalDevice, c.GraphicsQueueFamily = 0, NoQueueFamily

	if c.Surface != 0 {
		c.driver.DestroySurface(c.Instance, c.Surface)
		c.Surface = 0
	}

	if c.Instance != 0 {
		c.driver.DestroyInstance(c.Instance)
		c.Instance = 0
	}
}

// Driver returns the driver the context was created with.
func (c *Context) Driver() Driver {
	return c.driver
}

// Probe creates an instance without a window and describes every physical
// device it can see.
func Probe(driver Driver, cfg Configuration) ([]PhysicalDeviceInfo, error) {
	instance, err := driver.CreateInstance(cfg.instanceInfo(nil))
	if err != nil {
		return nil, stageError(ErrInstanceCreation, err)
	}
	defer driver.DestroyInstance(instance)

	gpus, err := driver.EnumeratePhysicalDevices(instance)
	if err != nil {
		return nil, stageError(ErrNoDevice, err)
	}

	infos := make([]PhysicalDeviceInfo, len(gpus))
	for i, gpu := range gpus {
		infos[i] = driver.DeviceInfo(gpu)
		if infos[i].QueueFamilies == nil {
			infos[i].QueueFamilies = driver.QueueFamilies(gpu)
		}
	}
	return infos, nil
}
