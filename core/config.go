package core

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/libreskies/libreskies/device"
	"github.com/pkg/errors"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Log    LogConfiguration
	Window WindowConfiguration
	Device device.Configuration
	Assets AssetConfiguration
	Time   TimeConfiguration
}

// LogConfiguration is used to configure logging
type LogConfiguration struct {
	// Level is a logrus level name
	Level string

	// Format is either "text" or "json"
	Format string
}

// WindowConfiguration is used to configure the main window
type WindowConfiguration struct {
	// Backend is "sdl" or "glfw"
	Backend string
	Title   string
	Width   int
	Height  int
}

// AssetConfiguration tells where assets are looked up
type AssetConfiguration struct {
	Directory string

	// Archive is an optional kar archive searched after Directory
	Archive string

	// Required assets are checked for existence on startup
	Required []string

	// Model is loaded on startup when set
	Model string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the window event polling interval in milliseconds
	EventPollDelay int
}

// DefaultConfiguration returns the configuration used
// when nothing is overridden by the environment.
func DefaultConfiguration() Configuration {
	return Configuration{
		Log: LogConfiguration{
			Level:  "info",
			Format: "text",
		},
		Window: WindowConfiguration{
			Backend: "glfw",
			Title:   "LibreSkies - Example",
			Width:   800,
			Height:  600,
		},
		Device: device.DefaultConfiguration(),
		Assets: AssetConfiguration{
			Directory: "assets",
			Required:  []string{"models/scene.gltf"},
			Model:     "models/scene.gltf",
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  10,
		},
	}
}

// LoadConfiguration starts from DefaultConfiguration and applies
// LIBRESKIES_* environment variables. When envFile is set it is
// loaded first, variables already in the environment win.
func LoadConfiguration(envFile string) (Configuration, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Configuration{}, errors.Wrapf(err, "loading %s", envFile)
		}
	}
	envy.Reload()

	cfg := DefaultConfiguration()
	var err error

	cfg.Log.Level = envy.Get("LIBRESKIES_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envy.Get("LIBRESKIES_LOG_FORMAT", cfg.Log.Format)

	cfg.Window.Backend = envy.Get("LIBRESKIES_WINDOW_BACKEND", cfg.Window.Backend)
	cfg.Window.Title = envy.Get("LIBRESKIES_WINDOW_TITLE", cfg.Window.Title)
	if cfg.Window.Width, err = envInt("LIBRESKIES_WINDOW_WIDTH", cfg.Window.Width); err != nil {
		return Configuration{}, err
	}
	if cfg.Window.Height, err = envInt("LIBRESKIES_WINDOW_HEIGHT", cfg.Window.Height); err != nil {
		return Configuration{}, err
	}

	if cfg.Device.Validation, err = envBool("VK_VALIDATION", cfg.Device.Validation); err != nil {
		return Configuration{}, err
	}
	cfg.Device.ApplicationName = envy.Get("LIBRESKIES_APP_NAME", cfg.Device.ApplicationName)
	if exts := envy.Get("LIBRESKIES_DEVICE_EXTENSIONS", ""); exts != "" {
		cfg.Device.DeviceExtensions = splitList(exts)
	}

	cfg.Assets.Directory = envy.Get("LIBRESKIES_ASSET_DIR", cfg.Assets.Directory)
	cfg.Assets.Archive = envy.Get("LIBRESKIES_ASSET_ARCHIVE", cfg.Assets.Archive)
	cfg.Assets.Model = envy.Get("LIBRESKIES_MODEL", cfg.Assets.Model)
	if req, ok := lookup("LIBRESKIES_ASSETS_REQUIRED"); ok {
		cfg.Assets.Required = splitList(req)
	}

	if cfg.Time.FramesPerSecond, err = envInt("LIBRESKIES_FPS", cfg.Time.FramesPerSecond); err != nil {
		return Configuration{}, err
	}
	if cfg.Time.EventPollDelay, err = envInt("LIBRESKIES_EVENT_POLL_DELAY", cfg.Time.EventPollDelay); err != nil {
		return Configuration{}, err
	}

	return cfg, nil
}

func lookup(key string) (string, bool) {
	if _, ok := envy.Map()[key]; !ok {
		return "", false
	}
	return envy.Get(key, ""), true
}

func envInt(key string, def int) (int, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return def, nil
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return num, nil
}

func envBool(key string, def bool) (bool, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "%s", key)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
