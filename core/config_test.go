// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/libreskies/libreskies/core"
	"github.com/libreskies/libreskies/device"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := core.LoadConfiguration("")
	require.NoError(t, err)

	def := core.DefaultConfiguration()
	require.Equal(t, def.Window, cfg.Window)
	require.Equal(t, def.Time, cfg.Time)
	require.Equal(t, []string{device.SwapchainExtension}, cfg.Device.DeviceExtensions)
	require.False(t, cfg.Device.Validation)
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	t.Setenv("LIBRESKIES_WINDOW_BACKEND", "sdl")
	t.Setenv("LIBRESKIES_WINDOW_WIDTH", "1024")
	t.Setenv("LIBRESKIES_LOG_FORMAT", "json")
	t.Setenv("VK_VALIDATION", "true")
	t.Setenv("LIBRESKIES_ASSETS_REQUIRED", "models/a.gltf, textures/b.png,")
	t.Setenv("LIBRESKIES_DEVICE_EXTENSIONS", "VK_KHR_swapchain,VK_KHR_maintenance1")

	cfg, err := core.LoadConfiguration("")
	require.NoError(t, err)

	require.Equal(t, "sdl", cfg.Window.Backend)
	require.Equal(t, 1024, cfg.Window.Width)
	require.Equal(t, 600, cfg.Window.Height)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Device.Validation)
	require.Equal(t, []string{"models/a.gltf", "textures/b.png"}, cfg.Assets.Required)
	require.Equal(t, []string{"VK_KHR_swapchain", "VK_KHR_maintenance1"}, cfg.Device.DeviceExtensions)
}

func TestLoadConfigurationEmptyRequired(t *testing.T) {
	t.Setenv("LIBRESKIES_ASSETS_REQUIRED", "")

	cfg, err := core.LoadConfiguration("")
	require.NoError(t, err)
	require.Empty(t, cfg.Assets.Required)
}

func TestLoadConfigurationInvalid(t *testing.T) {
	t.Setenv("LIBRESKIES_WINDOW_HEIGHT", "tall")

	_, err := core.LoadConfiguration("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "LIBRESKIES_WINDOW_HEIGHT")
}

func TestLoadConfigurationEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIBRESKIES_TEST_MODEL_MARKER=1\nLIBRESKIES_FPS=144\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LIBRESKIES_TEST_MODEL_MARKER")
		os.Unsetenv("LIBRESKIES_FPS")
	})

	cfg, err := core.LoadConfiguration(envFile)
	require.NoError(t, err)
	require.Equal(t, 144, cfg.Time.FramesPerSecond)
}

func TestLoadConfigurationMissingEnvFile(t *testing.T) {
	_, err := core.LoadConfiguration(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
