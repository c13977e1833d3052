package cmdshared

import (
	"sort"
	"time"

	"github.com/pterm/pterm"
	"github.com/racoonmc/mcpack/core"
	"github.com/spf13/viper"
)

const versionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type McVersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		ID          string    `json:"id"`
		Type        string    `json:"type"`
		URL         string    `json:"url"`
		Time        time.Time `json:"time"`
		ReleaseTime time.Time `json:"releaseTime"`
	} `json:"versions"`
}

func (m McVersionManifest) IsValid(version string) bool {
	for _, v := range m.Versions {
		if v.ID == version {
			return true
		}
	}
	return false
}

func GetValidMCVersions() (McVersionManifest, error) {
	out := McVersionManifest{}
	if err := core.GetJSON(versionManifestURL, &out); err != nil {
		return McVersionManifest{}, err
	}
	// Sort by newest to oldest
	sort.Slice(out.Versions, func(i, j int) bool {
		return out.Versions[i].ReleaseTime.After(out.Versions[j].ReleaseTime)
	})
	return out, nil
}

// PromptMCVersion asks for the Minecraft version a modpack targets. The
// answer is checked against Mojang's version manifest when available, but an
// unknown version is still accepted: by the time the version is requested the
// pack files are already in place, and only the profile entry remains to be
// written. The check is skipped entirely with --skip-version-check.
func PromptMCVersion() string {
	defaultVersion := ""
	var manifest McVersionManifest
	manifestKnown := false
	if !viper.GetBool("skip-version-check") {
		var err error
		manifest, err = GetValidMCVersions()
		if err != nil {
			pterm.Warning.Printfln("Failed to get latest Minecraft versions: %s", err)
		} else {
			manifestKnown = true
			defaultVersion = manifest.Latest.Release
		}
	}

	var version string
	if len(defaultVersion) > 0 {
		version = ReadValue("Input Minecraft version for modpack ["+defaultVersion+"]: ", defaultVersion)
	} else {
		version = ReadValue("Input Minecraft version for modpack: ", "")
	}
	if manifestKnown && !manifest.IsValid(version) {
		pterm.Warning.Printfln("%s is not a known Minecraft version; the launcher may refuse to start this profile", version)
	}
	return version
}
