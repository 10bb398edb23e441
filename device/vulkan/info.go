package vulkan

import (
	"github.com/libreskies/libreskies/device"
	vk "github.com/vulkan-go/vulkan"
)

// DeviceInfo implements device.Driver. Failed queries mark the info Invalid
// instead of failing, the device is still listed.
func (d *Driver) DeviceInfo(gpu device.PhysicalDevice) device.PhysicalDeviceInfo {
	var info device.PhysicalDeviceInfo
	pd, ok := d.gpus.get(uint64(gpu))
	if !ok {
		info.Invalid = true
		return info
	}

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, nil)); err != nil {
		info.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, deviceExt)); err != nil {
		info.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		info.Extensions = append(info.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, nil)); err != nil {
		info.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, deviceLayers)); err != nil {
		info.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		info.Layers = append(info.Layers, vk.ToString(layer.LayerName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(pd, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
	}

	// Get general device info
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &properties)
	properties.Deref()
	info.ID = int(properties.DeviceID)
	info.VendorID = int(properties.VendorID)
	info.DriverVersion = int(properties.DriverVersion)
	info.APIVersion = properties.ApiVersion
	info.Name = vk.ToString(properties.DeviceName[:])
	info.Type = deviceType(properties.DeviceType)

	info.QueueFamilies = d.QueueFamilies(gpu)
	return info
}

func deviceType(t vk.PhysicalDeviceType) device.PhysicalDeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return device.TypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return device.TypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return device.TypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return device.TypeCPU
	default:
		return device.TypeOther
	}
}
