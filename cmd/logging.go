package cmd

import (
	"io"
	"os"

	"github.com/potato3d/objparser/config"
	"github.com/potato3d/objparser/log"
	"github.com/urfave/cli"
)

var logger = log.New("objparser")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Configure log level and sinks. Verbosity flags take priority over the
// configured level. The returned closer releases the log file, if any.
func setupLogging(ctx *cli.Context, cfg *config.Config) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	var closer io.Closer = nopCloser{}
	if cfg.Logging.File != "" {
		file := log.RotatingFile(log.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		})
		log.SetSink(io.MultiWriter(os.Stdout, file))
		closer = file
	}

	log.SetLevel(level)
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return closer, nil
}

// Load the configuration file and apply command flag overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	if ctx.Bool("no-negative-indices") {
		cfg.Parser.ConvertNegativeIndices = false
	}
	if ctx.Bool("no-follow") {
		cfg.Parser.FollowMaterialLibs = false
	}
	if path := ctx.String("obj-log"); path != "" {
		cfg.Output.ObjLog = path
	}
	if path := ctx.String("mtl-log"); path != "" {
		cfg.Output.MtlLog = path
	}

	return cfg, nil
}
