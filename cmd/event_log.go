package cmd

import (
	"fmt"
	"io"

	"github.com/potato3d/objparser/asset/wavefront"
	"github.com/potato3d/objparser/types"
)

// eventLog writes one line per parser notification. The first write error is
// kept and all later writes are dropped.
type eventLog struct {
	w   io.Writer
	err error
}

func (l *eventLog) printf(format string, args ...interface{}) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format+"\n", args...)
}

func connectObjLog(p *wavefront.ObjParser, l *eventLog) {
	p.Error.Connect(func(m wavefront.Message) { l.printf("error (%d): %s", m.Line, m.Text) })
	p.Comment.Connect(func(m wavefront.Message) { l.printf("comment (%d): %s", m.Line, m.Text) })
	p.Vertex.Connect(func(v types.Vec3) { l.printf("vertex %s", v) })
	p.Normal.Connect(func(v types.Vec3) { l.printf("normal %s", v) })
	p.TexCoord.Connect(func(v types.Vec3) { l.printf("texcoord %s", v) })
	p.FaceBegin.Connect(func(n int) { l.printf("begin polygon (%d elements)", n) })
	p.FaceElement.Connect(func(fi types.FaceIndex) {
		l.printf("  element \n    vertex   %d\n    texcoord %d\n    normal   %d", fi.Vertex, fi.TexCoord, fi.Normal)
	})
	p.FaceEnd.Connect(func() { l.printf("end polygon") })
	p.ObjectName.Connect(func(name string) { l.printf("object: %s", name) })
	p.GroupName.Connect(func(name string) { l.printf("group: %s", name) })
	p.MaterialLib.Connect(func(name string) { l.printf("use material file: %s", name) })
	p.MaterialUse.Connect(func(name string) { l.printf("use material: %s", name) })
}

func connectMtlLog(p *wavefront.MtlParser, l *eventLog) {
	p.Error.Connect(func(m wavefront.Message) { l.printf("error (%d): %s", m.Line, m.Text) })
	p.Comment.Connect(func(m wavefront.Message) { l.printf("comment (%d): %s", m.Line, m.Text) })
	p.BeginMaterial.Connect(func(name string) { l.printf("new material: %s", name) })
	p.Ambient.Connect(func(c types.Vec3) { l.printf("  ambient  %s", c) })
	p.Diffuse.Connect(func(c types.Vec3) { l.printf("  diffuse %s", c) })
	p.Specular.Connect(func(c types.Vec3) { l.printf("  specular %s", c) })
	p.SpecularExponent.Connect(func(v float64) { l.printf("  specular exp: %.6g", v) })
	p.Opacity.Connect(func(v float64) { l.printf("  opacity: %.6g", v) })
	p.RefractionIndex.Connect(func(v float64) { l.printf("  refraction index: %.6g", v) })
	p.TextureAmbient.Connect(func(name string) { l.printf("  texture ambient: %s", name) })
	p.TextureDiffuse.Connect(func(name string) { l.printf("  texture diffuse: %s", name) })
	p.TextureSpecular.Connect(func(name string) { l.printf("  texture specular: %s", name) })
}
