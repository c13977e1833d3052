package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
)

// ProfilesFilename is the name of the launcher's profile registry file
const ProfilesFilename = "launcher_profiles.json"

// profilesVersion is the schema version the vanilla launcher expects
const profilesVersion = 2

// placeholderTimestamp is recorded for created/lastUsed; the launcher
// replaces it the first time the profile is started
const placeholderTimestamp = "2024-01-01T00:00:00.000Z"

// Profile is a single entry in the launcher's profile registry
type Profile struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Created       string `json:"created"`
	LastUsed      string `json:"lastUsed"`
	Icon          string `json:"icon"`
	LastVersionID string `json:"lastVersionId"`
	JavaDir       string `json:"javaDir"`
	JavaArgs      string `json:"javaArgs"`
	GameDir       string `json:"gameDir"`
}

// NewPackProfile creates the profile entry registered for an installed pack.
// An empty javaDir lets the launcher pick its own Java runtime.
func NewPackProfile(packName string, version string, gameDir string) Profile {
	return Profile{
		Name:          packName,
		Type:          "custom",
		Created:       placeholderTimestamp,
		LastUsed:      placeholderTimestamp,
		Icon:          "Furnace",
		LastVersionID: version,
		JavaDir:       "",
		JavaArgs:      "-Xmx4G",
		GameDir:       gameDir,
	}
}

// ProfileRegistry is the top level structure of launcher_profiles.json
type ProfileRegistry struct {
	Profiles map[string]Profile     `json:"profiles"`
	Settings map[string]interface{} `json:"settings"`
	Version  int                    `json:"version"`
}

func defaultProfileRegistry() *ProfileRegistry {
	return &ProfileRegistry{
		Profiles: make(map[string]Profile),
		Settings: make(map[string]interface{}),
		Version:  profilesVersion,
	}
}

// LoadProfileRegistry reads the registry file at path. A missing file yields
// a fresh default registry. A file that fails to decode is copied aside to
// path + ".bak" (replacing any previous backup, the original is never
// deleted) and a default registry is returned in its place.
func LoadProfileRegistry(path string) (*ProfileRegistry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultProfileRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	registry := ProfileRegistry{}
	if err := json.Unmarshal(data, &registry); err != nil {
		pterm.Warning.Printfln("Error decoding %s, backing up the file and creating a new one", filepath.Base(path))
		if err := os.WriteFile(path+".bak", data, 0644); err != nil {
			return nil, fmt.Errorf("failed to back up corrupt %s: %w", filepath.Base(path), err)
		}
		return defaultProfileRegistry(), nil
	}
	if registry.Profiles == nil {
		registry.Profiles = make(map[string]Profile)
	}
	if registry.Settings == nil {
		registry.Settings = make(map[string]interface{})
	}
	return &registry, nil
}

// SetProfile inserts the given profile, overwriting any entry with the same name
func (r *ProfileRegistry) SetProfile(profile Profile) {
	r.Profiles[profile.Name] = profile
}

// Write serialises the registry back to path, pretty-printed. The file is
// written to a temporary file in the same directory first and renamed over
// the old one, so a failed write never truncates the registry.
func (r *ProfileRegistry) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	// CreateTemp makes the file 0600; the launcher's own registry is 0644
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// RegisterProfile records a launcher profile for an installed pack in the
// registry under minecraftDir. Inserting a name that already exists replaces
// the old entry; other entries are left untouched. There is no locking, so
// concurrent installers racing on the same registry are last-writer-wins.
func RegisterProfile(minecraftDir string, packName string, version string, gameDir string) error {
	path := filepath.Join(minecraftDir, ProfilesFilename)
	registry, err := LoadProfileRegistry(path)
	if err != nil {
		return err
	}
	registry.SetProfile(NewPackProfile(packName, version, gameDir))
	if err := registry.Write(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", ProfilesFilename, err)
	}
	return nil
}
