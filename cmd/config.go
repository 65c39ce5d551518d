package cmd

import (
	"fmt"
	"os"

	"github.com/potato3d/objparser/config"
	"github.com/urfave/cli"
)

// Write the default configuration to the path given as the first argument or
// to the default config file. Existing files are only replaced with --force.
func InitConfig(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		path = config.DefaultFile
	}

	if _, err := os.Stat(path); err == nil && !ctx.Bool("force") {
		return fmt.Errorf("config file %s already exists; use --force to overwrite it", path)
	}

	if err := config.Default().SaveTo(path); err != nil {
		return err
	}

	logger.Noticef("wrote default config to %s", path)
	return nil
}
