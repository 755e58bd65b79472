// Package config handles the definition settings document and workspace
// paths. Settings are parsed into typed records and validated at the parse
// boundary so that resolution never sees a half-formed document.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/model"
)

// SettingsFileName is the fixed name of the settings document inside a
// definition.
const SettingsFileName = "settings.yaml"

// DefaultAppDir is the download subdirectory used when an app type has no
// mapping in the app_types table.
const DefaultAppDir = "user-apps"

// General holds definition-wide metadata. Device and OS values are detected
// elsewhere and consumed here as opaque strings.
type General struct {
	Template       string `yaml:"template,omitempty"`
	DeviceCodename string `yaml:"device_codename,omitempty"`
	OSVersion      string `yaml:"os_version,omitempty"`
}

// Defaults holds the fallback values applied to app declarations that omit
// the corresponding field.
type Defaults struct {
	Repository string `yaml:"repository"`
	AppType    string `yaml:"app_type,omitempty"`
	HashType   string `yaml:"hash_type,omitempty"`
}

// Settings is the typed form of a definition's settings.yaml.
type Settings struct {
	General      General                `yaml:"general,omitempty"`
	Defaults     Defaults               `yaml:"defaults"`
	AppTypes     map[string]string      `yaml:"app_types,omitempty"`
	Repositories []*model.Repository    `yaml:"repositories"`
	Apps         []model.AppDeclaration `yaml:"apps"`
}

// LoadSettings reads and validates the settings document of a definition.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, pkgerrors.ErrEmptySettingsPath
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open settings file %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadSettingsFromReader(file)
}

// LoadSettingsFromReader parses and validates a settings document.
func LoadSettingsFromReader(reader io.Reader) (*Settings, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read settings data")
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrSettingsParse, err.Error())
	}

	settings.applyDefaults()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.Defaults.AppType == "" {
		s.Defaults.AppType = "user"
	}
	if s.Defaults.HashType == "" {
		s.Defaults.HashType = "sha256"
	}
	if s.AppTypes == nil {
		s.AppTypes = map[string]string{s.Defaults.AppType: DefaultAppDir}
	}
}

// Validate checks the parts of the settings document the engine depends on.
// The default repository id must be present and refer to a configured
// repository whenever any declaration needs a lookup.
func (s *Settings) Validate() error {
	needsLookup := false
	for i := range s.Apps {
		if s.Apps[i].IsLookup() {
			needsLookup = true
			break
		}
	}
	if !needsLookup {
		return nil
	}
	if s.Defaults.Repository == "" {
		return fmt.Errorf("%w: %w", pkgerrors.ErrSettingsValidation, pkgerrors.ErrMissingDefaultRepo)
	}
	byID := s.RepositoriesByID()
	if _, ok := byID[s.Defaults.Repository]; !ok {
		return fmt.Errorf("%w: default repository %q: %w", pkgerrors.ErrSettingsValidation, s.Defaults.Repository, pkgerrors.ErrRepositoryNotFound)
	}
	return nil
}

// OSZipFileName returns the expected file name of the OS archive for this
// definition, derived from the detected device codename and OS version.
func (s *Settings) OSZipFileName() string {
	return s.General.DeviceCodename + "-" + s.General.OSVersion + ".zip"
}

// RepositoriesByID returns the configured repositories keyed by id.
func (s *Settings) RepositoriesByID() map[string]*model.Repository {
	byID := make(map[string]*model.Repository, len(s.Repositories))
	for _, repo := range s.Repositories {
		if repo != nil && repo.ID != "" {
			byID[repo.ID] = repo
		}
	}
	return byID
}

// AppDir maps an app type to its relative download directory inside the
// definition's archive tree.
func (s *Settings) AppDir(appType string) string {
	if dir, ok := s.AppTypes[appType]; ok && dir != "" {
		return dir
	}
	return DefaultAppDir
}
