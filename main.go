package main

import (
	"github.com/racoonmc/mcpack/cmd"

	// Installer modules of mcpack
	_ "github.com/racoonmc/mcpack/archive"
	_ "github.com/racoonmc/mcpack/install"
	_ "github.com/racoonmc/mcpack/scrape"
)

func main() {
	cmd.Execute()
}
