package device

import log "github.com/sirupsen/logrus"

// ValidationLayer is enabled on the instance and device in validation mode.
const ValidationLayer = "VK_LAYER_KHRONOS_validation"

// SwapchainExtension is the device extension needed for presentation.
const SwapchainExtension = "VK_KHR_swapchain"

// Configuration describes how the instance and device are created
type Configuration struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32

	// DeviceExtensions are requested on the logical device.
	DeviceExtensions []string

	// Validation enables the Khronos validation layer.
	Validation bool

	// Logger receives informational output, defaults to the standard logger.
	Logger log.FieldLogger
}

// DefaultConfiguration matches what the starter application uses.
func DefaultConfiguration() Configuration {
	return Configuration{
		ApplicationName:    "LibreSkiesApp",
		ApplicationVersion: MakeVersion(0, 1, 0),
		EngineName:         "LibreSkiesEngine",
		EngineVersion:      MakeVersion(0, 1, 0),
		APIVersion:         MakeVersion(1, 0, 0),
		DeviceExtensions:   []string{SwapchainExtension},
	}
}

func (c Configuration) logger() log.FieldLogger {
	if c.Logger == nil {
		return log.StandardLogger()
	}
	return c.Logger
}

func (c Configuration) layers() []string {
	if c.Validation {
		return []string{ValidationLayer}
	}
	return nil
}

func (c Configuration) instanceInfo(extensions []string) InstanceCreateInfo {
	return InstanceCreateInfo{
		ApplicationName:    c.ApplicationName,
		ApplicationVersion: c.ApplicationVersion,
		EngineName:         c.EngineName,
		EngineVersion:      c.EngineVersion,
		APIVersion:         c.APIVersion,
		Extensions:         extensions,
		Layers:             c.layers(),
	}
}
