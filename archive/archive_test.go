package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/racoonmc/mcpack/core"
)

func packZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	writer := zip.NewWriter(&buf)
	for name, content := range files {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func registryAt(t *testing.T, minecraftDir string) core.ProfileRegistry {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(minecraftDir, core.ProfilesFilename))
	if err != nil {
		t.Fatalf("Failed to read registry: %v", err)
	}
	registry := core.ProfileRegistry{}
	if err := json.Unmarshal(data, &registry); err != nil {
		t.Fatalf("Registry is not valid JSON: %v", err)
	}
	return registry
}

func staticVersion(version string) func() string {
	return func() string { return version }
}

func TestInstallRejectsBadURL(t *testing.T) {
	dir := t.TempDir()

	for _, badURL := range []string{
		"https://example.com/pack.tar.gz",
		"ftp://example.com/pack.zip",
		"not a url at all",
	} {
		if err := Install(dir, "MyPack", badURL, staticVersion("1.20.1")); err == nil {
			t.Errorf("Expected an error for %q", badURL)
		}
	}

	// Fail-fast means no side effects at all
	if _, err := os.Stat(filepath.Join(dir, "instances")); !os.IsNotExist(err) {
		t.Error("No instance directory should be created for an invalid URL")
	}
	if _, err := os.Stat(filepath.Join(dir, core.ProfilesFilename)); !os.IsNotExist(err) {
		t.Error("No registry should be written for an invalid URL")
	}
}

func TestInstall(t *testing.T) {
	httpmock.ActivateNonDefault(core.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder("GET", "https://example.com/MyPack.zip",
		httpmock.NewBytesResponder(200, packZipBytes(t, map[string]string{
			"manifest.json":      "{}",
			"mods/somemod.jar":   "jar bytes",
			"config/mod.cfg":     "a=1",
			"libraries/lib.jar":  "lib bytes",
			"overrides/misc.txt": "left in place",
		})))

	dir := t.TempDir()
	if err := Install(dir, "MyPack", "https://example.com/MyPack.zip", staticVersion("1.20.1")); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	instanceDir := filepath.Join(dir, "instances", "MyPack")
	workDir := filepath.Join(instanceDir, workDirName)

	if _, err := os.Stat(filepath.Join(instanceDir, "pack.zip")); err != nil {
		t.Error("Expected the downloaded archive to be kept in the instance directory")
	}
	for _, relocated := range []string{
		filepath.Join(workDir, "mods", "somemod.jar"),
		filepath.Join(workDir, "config", "mod.cfg"),
		filepath.Join(workDir, "libraries", "lib.jar"),
	} {
		if _, err := os.Stat(relocated); err != nil {
			t.Errorf("Expected %s to be relocated: %v", relocated, err)
		}
	}
	// Unknown folders stay where they were extracted
	if _, err := os.Stat(filepath.Join(instanceDir, "overrides", "misc.txt")); err != nil {
		t.Error("Unknown folders should stay at the instance root")
	}

	registry := registryAt(t, dir)
	if len(registry.Profiles) != 1 {
		t.Fatalf("Expected exactly 1 profile, found %d", len(registry.Profiles))
	}
	profile := registry.Profiles["MyPack"]
	if profile.GameDir != workDir {
		t.Errorf("Expected gameDir %s, found %s", workDir, profile.GameDir)
	}
	if profile.LastVersionID != "1.20.1" {
		t.Errorf("Expected version 1.20.1, found %s", profile.LastVersionID)
	}
}

func TestInstallTwiceOverwritesProfile(t *testing.T) {
	httpmock.ActivateNonDefault(core.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder("GET", "https://example.com/MyPack.zip",
		httpmock.NewBytesResponder(200, packZipBytes(t, map[string]string{
			"mods/somemod.jar": "jar bytes",
		})))

	dir := t.TempDir()
	if err := Install(dir, "MyPack", "https://example.com/MyPack.zip", staticVersion("1.19.2")); err != nil {
		t.Fatal(err)
	}
	if err := Install(dir, "MyPack", "https://example.com/MyPack.zip", staticVersion("1.20.1")); err != nil {
		t.Fatalf("Reinstall failed: %v", err)
	}

	registry := registryAt(t, dir)
	if len(registry.Profiles) != 1 {
		t.Fatalf("Expected reinstall to overwrite, found %d profiles", len(registry.Profiles))
	}
	if registry.Profiles["MyPack"].LastVersionID != "1.20.1" {
		t.Error("Expected the newer version in the overwritten entry")
	}
}

func TestInstallAbortsOnDownloadFailure(t *testing.T) {
	httpmock.ActivateNonDefault(core.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder("GET", "https://example.com/MyPack.zip",
		httpmock.NewStringResponder(500, "server error"))

	dir := t.TempDir()
	if err := Install(dir, "MyPack", "https://example.com/MyPack.zip", staticVersion("1.20.1")); err == nil {
		t.Fatal("Expected an error when the download fails")
	}

	// The run aborts before the registry update
	if _, err := os.Stat(filepath.Join(dir, core.ProfilesFilename)); !os.IsNotExist(err) {
		t.Error("No registry should be written when the download fails")
	}
}

func TestInstallAbortsOnBadArchive(t *testing.T) {
	httpmock.ActivateNonDefault(core.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder("GET", "https://example.com/MyPack.zip",
		httpmock.NewStringResponder(200, "definitely not a zip"))

	dir := t.TempDir()
	if err := Install(dir, "MyPack", "https://example.com/MyPack.zip", staticVersion("1.20.1")); err == nil {
		t.Fatal("Expected an error when extraction fails")
	}
	if _, err := os.Stat(filepath.Join(dir, core.ProfilesFilename)); !os.IsNotExist(err) {
		t.Error("No registry should be written when extraction fails")
	}
}
