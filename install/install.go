package install

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/racoonmc/mcpack/archive"
	"github.com/racoonmc/mcpack/cmd"
	"github.com/racoonmc/mcpack/cmdshared"
	"github.com/racoonmc/mcpack/scrape"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"
)

const (
	choiceArchive = "archive"
	choiceScrape  = "scrape"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a modpack, choosing the installation method interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		menu := wmenu.NewMenu("Choose an installation method:")
		menu.Option("Install from a direct download link", choiceArchive, true, nil)
		menu.Option("Install from an HTML document", choiceScrape, false, nil)
		menu.Action(runChoice)

		// An invalid choice surfaces here; nothing has happened yet
		if err := menu.Run(); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	cmd.Add(installCmd)
}

func runChoice(opts []wmenu.Opt) error {
	if len(opts) != 1 || opts[0].Value == nil {
		return errors.New("invalid choice")
	}

	minecraftDir := viper.GetString("minecraft-dir")
	packName := cmdshared.ReadValue("Input pack name: ", "FTB_Pack")

	switch opts[0].Value.(string) {
	case choiceArchive:
		fmt.Println("To download a modpack you need a direct download link ending with .zip.")
		fmt.Println("You can obtain one by downloading the modpack from CurseForge and copying the link to the zip file.")
		packURL := cmdshared.ReadValue("Input direct download URL (ending with .zip): ", "")
		return archive.Install(minecraftDir, packName, packURL, cmdshared.PromptMCVersion)
	case choiceScrape:
		htmlPath := cmdshared.ReadValue("Input the path to the local HTML file: ", "")
		return scrape.Install(minecraftDir, packName, htmlPath, cmdshared.PromptMCVersion)
	}
	return errors.New("invalid choice")
}
