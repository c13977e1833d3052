package archive

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/racoonmc/mcpack/cmd"
	"github.com/racoonmc/mcpack/cmdshared"
	"github.com/racoonmc/mcpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// workDirName is the subfolder of an instance the launcher profile points at
const workDirName = "minecraft"

var archiveCmd = &cobra.Command{
	Use:     "archive [name] [url]",
	Short:   "Install a modpack from a direct download link to its zip archive",
	Aliases: []string{"zip", "link"},
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := Install(viper.GetString("minecraft-dir"), args[0], args[1], versionFlagOrPrompt)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	},
}

func versionFlagOrPrompt() string {
	version := viper.GetString("archive.mc-version")
	if len(version) == 0 {
		version = cmdshared.PromptMCVersion()
	}
	return version
}

func init() {
	cmd.Add(archiveCmd)

	archiveCmd.Flags().String("mc-version", "", "The Minecraft version of the modpack (prompted for if not given)")
	_ = viper.BindPFlag("archive.mc-version", archiveCmd.Flags().Lookup("mc-version"))
}

// Install downloads the pack zip at packURL into a fresh instance directory
// under minecraftDir, extracts it in place, moves the known pack folders into
// the instance's nested working directory and registers a launcher profile
// pointing at it. askVersion supplies the Minecraft version for the profile
// entry; it is not called until all files are in place.
//
// A download or extraction failure aborts the remaining steps. There is no
// rollback: files already written stay where they are.
func Install(minecraftDir string, packName string, packURL string, askVersion func() string) error {
	parsed, err := url.Parse(packURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || !strings.HasSuffix(parsed.Path, ".zip") {
		return fmt.Errorf("invalid direct download link %s: must be an HTTP(S) URL ending with .zip", packURL)
	}

	instanceDir := filepath.Join(minecraftDir, "instances", packName)
	workDir := filepath.Join(instanceDir, workDirName)
	if err := os.MkdirAll(instanceDir, 0755); err != nil {
		return fmt.Errorf("failed to create instance directory: %w", err)
	}

	pterm.Info.Printfln("Downloading pack from %s...", packURL)
	zipPath := filepath.Join(instanceDir, "pack.zip")
	if err := core.DownloadFile(packURL, zipPath); err != nil {
		return fmt.Errorf("failed to download pack: %w", err)
	}

	pterm.Info.Println("Extracting pack...")
	if err := core.ExtractZip(zipPath, instanceDir); err != nil {
		return fmt.Errorf("failed to extract pack: %w", err)
	}

	pterm.Info.Println("Moving pack folders...")
	if err := core.RelocateInstanceFolders(instanceDir, workDir); err != nil {
		return fmt.Errorf("failed to move pack folders: %w", err)
	}

	pterm.Info.Println("Updating launcher profile...")
	if err := core.RegisterProfile(minecraftDir, packName, askVersion(), workDir); err != nil {
		return err
	}

	pterm.Success.Printfln("Pack '%s' installed! Launch Minecraft and select the '%s' profile.", packName, packName)
	return nil
}
