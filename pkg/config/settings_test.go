package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
)

const validSettings = `
general:
  template: default
  device_codename: hammerhead
  os_version: "13.0"
defaults:
  repository: f-droid
app_types:
  user: user-apps
  system: system-apps
repositories:
  - id: f-droid
    name: F-Droid
    url: https://f-droid.org/repo
apps:
  - id: org.example.app
    versioncode: "3"
  - url: https://host/x/custom-1.0.apk
    type: system
`

func TestLoadSettingsFromReader(t *testing.T) {
	settings, err := LoadSettingsFromReader(strings.NewReader(validSettings))
	require.NoError(t, err)

	assert.Equal(t, "hammerhead", settings.General.DeviceCodename)
	assert.Equal(t, "f-droid", settings.Defaults.Repository)
	assert.Equal(t, "user", settings.Defaults.AppType)
	assert.Equal(t, "sha256", settings.Defaults.HashType)
	require.Len(t, settings.Apps, 2)
	assert.True(t, settings.Apps[0].IsLookup())
	assert.True(t, settings.Apps[1].IsDirect())

	byID := settings.RepositoriesByID()
	require.Contains(t, byID, "f-droid")
	assert.Equal(t, "F-Droid", byID["f-droid"].Name)
}

func TestLoadSettingsMissingDefaultRepository(t *testing.T) {
	doc := `
repositories:
  - id: f-droid
    name: F-Droid
    url: https://f-droid.org/repo
apps:
  - id: org.example.app
`
	_, err := LoadSettingsFromReader(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrSettingsValidation))
	assert.True(t, errors.Is(err, pkgerrors.ErrMissingDefaultRepo))
}

func TestLoadSettingsUnknownDefaultRepository(t *testing.T) {
	doc := `
defaults:
  repository: nope
repositories:
  - id: f-droid
    name: F-Droid
    url: https://f-droid.org/repo
apps:
  - id: org.example.app
`
	_, err := LoadSettingsFromReader(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrSettingsValidation))
	assert.True(t, errors.Is(err, pkgerrors.ErrRepositoryNotFound))
}

func TestLoadSettingsDirectOnlyNeedsNoRepository(t *testing.T) {
	doc := `
apps:
  - url: https://host/x/custom-1.0.apk
`
	settings, err := LoadSettingsFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, settings.Apps, 1)
}

func TestLoadSettingsMalformedYAML(t *testing.T) {
	_, err := LoadSettingsFromReader(strings.NewReader("apps: [broken"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrSettingsParse))
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(validSettings), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "system-apps", settings.AppDir("system"))
	assert.Equal(t, DefaultAppDir, settings.AppDir("unknown"))

	_, err = LoadSettings(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSettings("")
	assert.True(t, errors.Is(err, pkgerrors.ErrEmptySettingsPath))
}

func TestWorkspacePaths(t *testing.T) {
	ws, err := NewWorkspace("/tmp/workspace")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/tmp/workspace", "definitions", "my-phone"), ws.DefinitionPath("my-phone"))
	assert.Equal(t, filepath.Join("/tmp/workspace", "resources"), ws.ResourcesDir())
	assert.Equal(t, filepath.Join("/tmp/workspace", "resources", "armeabi-apps"), ws.AppCacheDir("armeabi"))
}

func TestValidateDefinitionName(t *testing.T) {
	assert.True(t, ValidateDefinitionName("my-phone2"))
	assert.False(t, ValidateDefinitionName("My-Phone"))
	assert.False(t, ValidateDefinitionName("2phone"))
	assert.False(t, ValidateDefinitionName("a"))
}
