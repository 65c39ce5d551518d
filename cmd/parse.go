package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/potato3d/objparser/asset"
	"github.com/potato3d/objparser/asset/wavefront"
	"github.com/potato3d/objparser/config"
	"github.com/urfave/cli"
)

// Parse obj files and write every parser notification to the event logs.
func ParseScene(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	closer, err := setupLogging(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() == 0 {
		return errors.New("missing obj file argument")
	}

	objOut, err := os.Create(cfg.Output.ObjLog)
	if err != nil {
		return err
	}
	defer objOut.Close()

	var mtlOut io.Writer
	if cfg.Parser.FollowMaterialLibs {
		f, err := os.Create(cfg.Output.MtlLog)
		if err != nil {
			return err
		}
		defer f.Close()
		mtlOut = f
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		objFile := ctx.Args().Get(idx)
		logger.Noticef("parsing %s", objFile)
		if err := writeEventLogs(objFile, cfg.Parser, objOut, mtlOut); err != nil {
			return err
		}
	}

	logger.Noticef("obj events written to %s", cfg.Output.ObjLog)
	if mtlOut != nil {
		logger.Noticef("mtl events written to %s", cfg.Output.MtlLog)
	}
	return nil
}

// Parse objFile, logging its events to objOut. When material libraries are
// followed, each mtllib is resolved relative to objFile and its events are
// logged to mtlOut.
func writeEventLogs(objFile string, opts config.ParserConfig, objOut, mtlOut io.Writer) error {
	objLog := &eventLog{w: objOut}
	mtlLog := &eventLog{w: mtlOut}

	p := wavefront.NewObjParser()
	p.ConvertNegativeIndices = opts.ConvertNegativeIndices
	connectObjLog(p, objLog)

	var numErrors int
	p.Error.Connect(func(wavefront.Message) { numErrors++ })

	var mtlErr error
	if opts.FollowMaterialLibs && mtlOut != nil {
		p.MaterialLib.Connect(func(name string) {
			mtlErr = firstErr(mtlErr, parseMaterialLib(name, objFile, mtlLog))
		})
	}

	if err := p.ParseFile(objFile); err != nil {
		return err
	}
	if numErrors > 0 {
		logger.Warningf("%s: %d parse errors", objFile, numErrors)
	}

	if mtlErr != nil {
		return mtlErr
	}
	if objLog.err != nil {
		return objLog.err
	}
	return mtlLog.err
}

func parseMaterialLib(name, objFile string, l *eventLog) error {
	if name == "" {
		logger.Warningf("%s: skipping mtllib without a filename", objFile)
		return nil
	}

	mtlFile, err := asset.ResolvePath(name, objFile)
	if err != nil {
		logger.Warningf("skipping material library %q: %v", name, err)
		return nil
	}

	logger.Infof("parsing material library %s", mtlFile)
	mp := wavefront.NewMtlParser()
	connectMtlLog(mp, l)

	err = mp.ParseFile(mtlFile)
	if errors.Is(err, wavefront.ErrUnsupportedOpacityOptions) {
		logger.Warningf("%s: %v", mtlFile, err)
		return nil
	}
	return err
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
