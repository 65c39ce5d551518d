package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/potato3d/objparser/asset"
	"github.com/potato3d/objparser/asset/wavefront"
	"github.com/potato3d/objparser/config"
	"github.com/potato3d/objparser/types"
	"github.com/urfave/cli"
)

var (
	objEventKinds = []string{
		"error", "comment", "vertex", "normal", "texcoord", "face", "face element",
		"object", "group", "mtllib", "usemtl",
	}
	mtlEventKinds = []string{
		"error", "comment", "newmtl", "Ka", "Kd", "Ks", "Ns", "d", "Ni",
		"map_Ka", "map_Kd", "map_Ks",
	}
)

// eventCount tracks how many events of each kind a single file produced.
type eventCount struct {
	file   string
	kinds  []string
	counts map[string]int
}

func newEventCount(file string, kinds []string) *eventCount {
	return &eventCount{file: file, kinds: kinds, counts: make(map[string]int)}
}

func (c *eventCount) inc(kind string) { c.counts[kind]++ }

func (c *eventCount) total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Display event statistics for obj and mtl files.
func ShowStats(ctx *cli.Context) error {
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
		return errors.New("missing obj or mtl file argument")
	}

	var counts []*eventCount
	for idx := 0; idx < ctx.NArg(); idx++ {
		fileCounts, err := collectStats(ctx.Args().Get(idx), cfg.Parser)
		if err != nil {
			return err
		}
		counts = append(counts, fileCounts...)
	}

	var buf bytes.Buffer
	renderStats(&buf, counts)
	logger.Noticef("event statistics:\n%s", buf.String())
	return nil
}

// Count the events produced by file. Files with an .mtl extension are parsed
// as material libraries; anything else is parsed as an obj file whose
// material libraries are counted separately when opts allow it.
func collectStats(file string, opts config.ParserConfig) ([]*eventCount, error) {
	if strings.EqualFold(filepath.Ext(file), ".mtl") {
		count, err := countMtl(file)
		if err != nil {
			return nil, err
		}
		return []*eventCount{count}, nil
	}

	objCount := newEventCount(file, objEventKinds)
	counts := []*eventCount{objCount}

	p := wavefront.NewObjParser()
	p.ConvertNegativeIndices = opts.ConvertNegativeIndices
	p.Error.Connect(func(wavefront.Message) { objCount.inc("error") })
	p.Comment.Connect(func(wavefront.Message) { objCount.inc("comment") })
	p.Vertex.Connect(func(types.Vec3) { objCount.inc("vertex") })
	p.Normal.Connect(func(types.Vec3) { objCount.inc("normal") })
	p.TexCoord.Connect(func(types.Vec3) { objCount.inc("texcoord") })
	p.FaceBegin.Connect(func(int) { objCount.inc("face") })
	p.FaceElement.Connect(func(types.FaceIndex) { objCount.inc("face element") })
	p.ObjectName.Connect(func(string) { objCount.inc("object") })
	p.GroupName.Connect(func(string) { objCount.inc("group") })
	p.MaterialUse.Connect(func(string) { objCount.inc("usemtl") })

	var mtlErr error
	p.MaterialLib.Connect(func(name string) {
		objCount.inc("mtllib")
		if !opts.FollowMaterialLibs || mtlErr != nil || name == "" {
			return
		}

		mtlFile, err := asset.ResolvePath(name, file)
		if err != nil {
			logger.Warningf("skipping material library %q: %v", name, err)
			return
		}

		mtlCount, err := countMtl(mtlFile)
		if err != nil {
			mtlErr = err
			return
		}
		counts = append(counts, mtlCount)
	})

	if err := p.ParseFile(file); err != nil {
		return nil, err
	}
	if mtlErr != nil {
		return nil, mtlErr
	}
	return counts, nil
}

func countMtl(file string) (*eventCount, error) {
	count := newEventCount(file, mtlEventKinds)

	p := wavefront.NewMtlParser()
	p.Error.Connect(func(wavefront.Message) { count.inc("error") })
	p.Comment.Connect(func(wavefront.Message) { count.inc("comment") })
	p.BeginMaterial.Connect(func(string) { count.inc("newmtl") })
	p.Ambient.Connect(func(types.Vec3) { count.inc("Ka") })
	p.Diffuse.Connect(func(types.Vec3) { count.inc("Kd") })
	p.Specular.Connect(func(types.Vec3) { count.inc("Ks") })
	p.SpecularExponent.Connect(func(float64) { count.inc("Ns") })
	p.Opacity.Connect(func(float64) { count.inc("d") })
	p.RefractionIndex.Connect(func(float64) { count.inc("Ni") })
	p.TextureAmbient.Connect(func(string) { count.inc("map_Ka") })
	p.TextureDiffuse.Connect(func(string) { count.inc("map_Kd") })
	p.TextureSpecular.Connect(func(string) { count.inc("map_Ks") })

	err := p.ParseFile(file)
	if errors.Is(err, wavefront.ErrUnsupportedOpacityOptions) {
		logger.Warningf("%s: %v", file, err)
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return count, nil
}

// Render counts as a table with one row per non-zero event kind.
func renderStats(w io.Writer, counts []*eventCount) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"File", "Event", "Count"})

	total := 0
	for _, c := range counts {
		file := c.file
		for _, kind := range c.kinds {
			n := c.counts[kind]
			if n == 0 {
				continue
			}
			table.Append([]string{file, kind, fmt.Sprint(n)})
			file = ""
		}
		total += c.total()
	}

	table.SetFooter([]string{"Total", " ", fmt.Sprint(total)})
	table.Render()
}
