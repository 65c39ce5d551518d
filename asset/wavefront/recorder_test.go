package wavefront

import (
	"fmt"
	"strings"
	"testing"

	"github.com/potato3d/objparser/types"
)

// recorder flattens parser notifications into strings so tests can compare
// complete event sequences.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) message(kind string) func(Message) {
	return func(m Message) { r.add("%s %d: %s", kind, m.Line, m.Text) }
}

func (r *recorder) vec3(kind string) func(types.Vec3) {
	return func(v types.Vec3) { r.add("%s %s", kind, v) }
}

func (r *recorder) scalar(kind string) func(float64) {
	return func(v float64) { r.add("%s %.6g", kind, v) }
}

func (r *recorder) text(kind string) func(string) {
	return func(s string) { r.add("%s %q", kind, s) }
}

func recordObj(p *ObjParser) *recorder {
	r := &recorder{}
	p.Error.Connect(r.message("error"))
	p.Comment.Connect(r.message("comment"))
	p.Vertex.Connect(r.vec3("vertex"))
	p.Normal.Connect(r.vec3("normal"))
	p.TexCoord.Connect(r.vec3("texcoord"))
	p.FaceBegin.Connect(func(n int) { r.add("face begin %d", n) })
	p.FaceElement.Connect(func(fi types.FaceIndex) {
		r.add("face element %d/%d/%d", fi.Vertex, fi.TexCoord, fi.Normal)
	})
	p.FaceEnd.Connect(func() { r.add("face end") })
	p.ObjectName.Connect(r.text("object"))
	p.GroupName.Connect(r.text("group"))
	p.MaterialLib.Connect(r.text("mtllib"))
	p.MaterialUse.Connect(r.text("usemtl"))
	return r
}

func recordMtl(p *MtlParser) *recorder {
	r := &recorder{}
	p.Error.Connect(r.message("error"))
	p.Comment.Connect(r.message("comment"))
	p.BeginMaterial.Connect(r.text("newmtl"))
	p.Ambient.Connect(r.vec3("ambient"))
	p.Diffuse.Connect(r.vec3("diffuse"))
	p.Specular.Connect(r.vec3("specular"))
	p.SpecularExponent.Connect(r.scalar("specular exponent"))
	p.Opacity.Connect(r.scalar("opacity"))
	p.RefractionIndex.Connect(r.scalar("refraction index"))
	p.TextureAmbient.Connect(r.text("texture ambient"))
	p.TextureDiffuse.Connect(r.text("texture diffuse"))
	p.TextureSpecular.Connect(r.text("texture specular"))
	return r
}

func assertEvents(t *testing.T, got, exp []string) {
	t.Helper()
	if len(got) != len(exp) {
		t.Fatalf("expected %d events:\n  %s\ngot %d:\n  %s", len(exp), strings.Join(exp, "\n  "), len(got), strings.Join(got, "\n  "))
	}
	for idx := range exp {
		if got[idx] != exp[idx] {
			t.Fatalf("expected event %d to be %q; got %q", idx, exp[idx], got[idx])
		}
	}
}
