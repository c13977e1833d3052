package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var minecraftDir string
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcpack",
	Short: "A command line tool for installing Minecraft modpacks into the vanilla launcher",
}

// Execute starts the root command for mcpack
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to mcpack
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

func init() {
	cobra.OnInitialize(initConfig)

	defaultDir := "."
	if home, err := homedir.Dir(); err == nil {
		defaultDir = filepath.Join(home, ".minecraft")
	}

	rootCmd.PersistentFlags().StringVar(&minecraftDir, "minecraft-dir", defaultDir, "The Minecraft launcher directory to install into")
	_ = viper.BindPFlag("minecraft-dir", rootCmd.PersistentFlags().Lookup("minecraft-dir"))

	rootCmd.PersistentFlags().Bool("non-interactive", false, "Never prompt; use flag or default values for every input")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	rootCmd.PersistentFlags().Bool("skip-version-check", false, "Don't check entered Minecraft versions against Mojang's version manifest")
	_ = viper.BindPFlag("skip-version-check", rootCmd.PersistentFlags().Lookup("skip-version-check"))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mcpack.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mcpack" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".mcpack")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
