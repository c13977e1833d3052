package core

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InstanceFolders are the pack folders relocated from an extracted archive
// into the instance's working directory
var InstanceFolders = []string{"mods", "config", "libraries"}

// ExtractZip extracts every entry of the archive at zipPath into destDir.
// Entries whose names would escape destDir are rejected.
func ExtractZip(zipPath string, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	defer reader.Close()

	cleanDest := filepath.Clean(destDir)
	for _, file := range reader.File {
		path := filepath.Join(cleanDest, filepath.FromSlash(file.Name))
		if path != cleanDest && !strings.HasPrefix(path, cleanDest+string(os.PathSeparator)) {
			return fmt.Errorf("zip entry %s escapes the destination directory", file.Name)
		}
		if file.Mode().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := extractZipFile(file, path); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func extractZipFile(file *zip.File, path string) error {
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// RelocateInstanceFolders moves the contents of the known pack folders at the
// root of instanceDir into the matching folders under workDir. The
// destination folders are always created, whether or not the source exists,
// so running twice is harmless. Moving on top of an existing entry replaces
// it (last write wins).
func RelocateInstanceFolders(instanceDir string, workDir string) error {
	for _, folder := range InstanceFolders {
		target := filepath.Join(workDir, folder)
		if err := os.MkdirAll(target, 0755); err != nil {
			return err
		}

		source := filepath.Join(instanceDir, folder)
		entries, err := os.ReadDir(source)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		for _, entry := range entries {
			dest := filepath.Join(target, entry.Name())
			if err := os.RemoveAll(dest); err != nil {
				return err
			}
			if err := os.Rename(filepath.Join(source, entry.Name()), dest); err != nil {
				return err
			}
		}
	}
	return nil
}
