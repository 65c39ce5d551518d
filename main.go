package main

import (
	"fmt"
	"os"

	"github.com/potato3d/objparser/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	parserFlags := []cli.Flag{
		cli.BoolFlag{
			Name:  "no-negative-indices",
			Usage: "report negative face indices without converting them",
		},
		cli.BoolFlag{
			Name:  "no-follow",
			Usage: "do not parse material libraries referenced by mtllib",
		},
	}

	app := cli.NewApp()
	app.Name = "objparser"
	app.Usage = "parse wavefront obj and mtl files"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "parse",
			Usage: "parse obj files and log every parser event",
			Description: `
Parse one or more wavefront obj files and write a line for every parser
notification to the obj event log. Material libraries referenced with mtllib
are resolved next to the obj file and their events are written to the mtl
event log.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "obj-log",
					Usage: "write obj events to `FILE`",
				},
				cli.StringFlag{
					Name:  "mtl-log",
					Usage: "write mtl events to `FILE`",
				},
			}, parserFlags...),
			Action: cmd.ParseScene,
		},
		{
			Name:        "stats",
			Usage:       "display event counts for obj and mtl files",
			Description: `Parse obj or mtl files and display a table with the number of events of each kind.`,
			ArgsUsage:   "file1.obj file2.mtl ...",
			Flags:       parserFlags,
			Action:      cmd.ShowStats,
		},
		{
			Name:  "config",
			Usage: "manage objparser settings",
			Subcommands: []cli.Command{
				{
					Name:      "init",
					Usage:     "write the default settings to a config file",
					ArgsUsage: "[objparser.yaml]",
					Flags: []cli.Flag{
						cli.BoolFlag{
							Name:  "force",
							Usage: "overwrite an existing config file",
						},
					},
					Action: cmd.InitConfig,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
