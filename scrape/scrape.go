package scrape

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/racoonmc/mcpack/cmd"
	"github.com/racoonmc/mcpack/cmdshared"
	"github.com/racoonmc/mcpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"
)

// modExtensions are the link suffixes treated as downloadable mod files
var modExtensions = []string{".jar", ".zip"}

var scrapeCmd = &cobra.Command{
	Use:     "scrape [name] [file]",
	Short:   "Install mods linked from a local HTML document",
	Aliases: []string{"html"},
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
	version := viper.GetString("scrape.mc-version")
	if len(version) == 0 {
		version = cmdshared.PromptMCVersion()
	}
	return version
}

func init() {
	cmd.Add(scrapeCmd)

	scrapeCmd.Flags().String("mc-version", "", "The Minecraft version of the modpack (prompted for if not given)")
	_ = viper.BindPFlag("scrape.mc-version", scrapeCmd.Flags().Lookup("mc-version"))
}

// CollectModLinks parses an HTML document and returns the targets of every
// anchor pointing at a mod file, in document order.
func CollectModLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []string
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "a" {
			for _, attr := range node.Attr {
				if attr.Key == "href" && hasModExtension(attr.Val) {
					links = append(links, attr.Val)
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links, nil
}

func hasModExtension(link string) bool {
	for _, ext := range modExtensions {
		if strings.HasSuffix(link, ext) {
			return true
		}
	}
	return false
}

// Install gathers mod links from the HTML document at htmlPath, fetches each
// one into the mods folder under minecraftDir and registers a launcher
// profile pointing at minecraftDir itself. A link that fails to copy or
// download is reported and skipped; a document that cannot be read fails the
// whole run. askVersion supplies the Minecraft version for the profile entry.
func Install(minecraftDir string, packName string, htmlPath string, askVersion func() string) error {
	file, err := os.Open(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to open HTML file: %w", err)
	}
	links, err := CollectModLinks(file)
	_ = file.Close()
	if err != nil {
		return fmt.Errorf("failed to parse HTML file: %w", err)
	}

	modsDir := filepath.Join(minecraftDir, "mods")
	if err := os.MkdirAll(modsDir, 0755); err != nil {
		return fmt.Errorf("failed to create mods directory: %w", err)
	}

	for _, link := range links {
		installModLink(link, modsDir)
	}

	pterm.Info.Println("Updating launcher profile...")
	if err := core.RegisterProfile(minecraftDir, packName, askVersion(), minecraftDir); err != nil {
		return err
	}

	pterm.Success.Printfln("Mods installed! Launch Minecraft and select the '%s' profile.", packName)
	return nil
}

// installModLink fetches one mod link into modsDir. Local paths are copied,
// HTTP(S) URLs are downloaded under the URL's final path segment, and
// anything else is reported as unsupported. Failures never abort the run.
func installModLink(link string, modsDir string) {
	if info, err := os.Stat(link); err == nil && info.Mode().IsRegular() {
		if err := copyMod(link, modsDir); err != nil {
			pterm.Error.Printfln("Error copying mod from %s: %v", link, err)
			return
		}
		pterm.Success.Printfln("Mod copied from %s to %s", link, modsDir)
		return
	}

	parsed, err := url.Parse(link)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		fileName := path.Base(parsed.Path)
		if fileName == "." || fileName == "/" {
			// URLs like https://mods.zip have no path segment at all
			fileName = parsed.Host
		}
		pterm.Info.Printfln("Downloading mod from %s...", link)
		if err := core.DownloadFile(link, filepath.Join(modsDir, fileName)); err != nil {
			pterm.Error.Printfln("Error downloading mod from %s: %v", link, err)
			return
		}
		pterm.Success.Printfln("Mod %s downloaded successfully!", fileName)
		return
	}

	pterm.Warning.Printfln("Unsupported link type: %s", link)
}

func copyMod(src string, modsDir string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(filepath.Join(modsDir, filepath.Base(src)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
