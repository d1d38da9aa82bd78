package main

import (
	"fmt"
	"os"

	"github.com/smartgallery/smartgallery/cmd/smartgallery/cli"
	"github.com/smartgallery/smartgallery/cmd/smartgallery/cli/gallery"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())
	root.AddCommand(cli.NewConfigCommand())

	root.AddCommand(gallery.NewImportCommand())
	root.AddCommand(gallery.NewListCommand())
	root.AddCommand(gallery.NewSearchCommand())
	root.AddCommand(gallery.NewShowCommand())
	root.AddCommand(gallery.NewRetagCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
