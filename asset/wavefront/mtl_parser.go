package wavefront

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/potato3d/objparser/asset"
	"github.com/potato3d/objparser/log"
	"github.com/potato3d/objparser/types"
)

// ErrUnsupportedOpacityOptions is returned by MtlParser.Parse when an opacity
// statement uses options. The remainder of the stream is not parsed.
var ErrUnsupportedOpacityOptions = errors.New("wavefront: opacity options are not supported")

// MtlParser reads wavefront material library (.mtl) streams and reports what
// it finds through its signals.
//
// Known limitations:
//   - texture map options are skipped and only the last word of a texture
//     statement is used as the filename
//   - opacity statements with options stop the parse
type MtlParser struct {
	// Parse errors and warnings.
	Error Signal[Message]

	// Comment lines. The text starts two characters after the '#' marker.
	Comment Signal[Message]

	// Start of a new material definition. The properties that follow
	// belong to this material.
	BeginMaterial Signal[string]

	Ambient          Signal[types.Vec3]
	Diffuse          Signal[types.Vec3]
	Specular         Signal[types.Vec3]
	SpecularExponent Signal[float64]
	Opacity          Signal[float64]
	RefractionIndex  Signal[float64]

	TextureAmbient  Signal[string]
	TextureDiffuse  Signal[string]
	TextureSpecular Signal[string]

	logger log.Logger
}

// Create a new material library parser.
func NewMtlParser() *MtlParser {
	return &MtlParser{
		logger: log.New("wavefront mtl parser"),
	}
}

// Parse the material library at path. If the file cannot be opened a single
// Error with line 0 is emitted and no parsing takes place.
func (p *MtlParser) ParseFile(path string) error {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		p.logf("could not open %q: %v", path, err)
		p.Error.emit(Message{Line: 0, Text: fmt.Sprintf("Cannot open file '%s'.", path)})
		return nil
	}
	defer res.Close()
	p.logf("reading %s (remote: %t)", res.Path(), res.IsRemote())

	return p.Parse(res)
}

// Parse a material library stream. Malformed lines are reported through the
// Error signal and skipped. Parse returns ErrUnsupportedOpacityOptions if the
// parse was stopped early or a wrapped error if reading from r fails.
func (p *MtlParser) Parse(r io.Reader) error {
	start := time.Now()
	s := &mtlSession{parser: p}

	lines, completed, err := scanLines(r, func(lineNum int, line string) bool {
		s.lineNum = lineNum
		return s.parseLine(line)
	})

	p.logf("parsed %d lines (%d materials) in %d ms", lines, s.numMaterials, time.Since(start).Nanoseconds()/1e6)
	if err != nil {
		return err
	}
	if !completed {
		return ErrUnsupportedOpacityOptions
	}
	return nil
}

func (p *MtlParser) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debugf(format, args...)
	}
}

// mtlSession holds the state of a single Parse call.
type mtlSession struct {
	parser       *MtlParser
	lineNum      int
	numMaterials int
}

func (s *mtlSession) emitError(msg string) {
	s.parser.Error.emit(Message{Line: s.lineNum, Text: msg})
}

// Parse a single line. Returns false if the remainder of the stream must be
// skipped.
func (s *mtlSession) parseLine(line string) bool {
	p := s.parser

	keyword, _, fs, ok := readKeyword(s.lineNum, line, &p.Comment)
	if !ok {
		return true
	}

	switch keyword {
	case "newmtl":
		fs.skipSpace()
		name, ok := fs.word()
		if !ok {
			s.emitError("Parse error reading material name, skipping it.")
			return true
		}
		fs.skipSpace()
		if !fs.eof() {
			s.emitError("Ignoring information beyond first material name.")
		}
		p.BeginMaterial.emit(name)
		s.numMaterials++
	case "Ka":
		s.parseColor(fs, "ambient", &p.Ambient)
	case "Kd":
		s.parseColor(fs, "diffuse", &p.Diffuse)
	case "Ks":
		s.parseColor(fs, "specular", &p.Specular)
	case "d", "Tr":
		// Options can't be told apart from a negative value; give up on the
		// rest of the file.
		fs.skipSpace()
		if fs.peek() == '-' {
			s.emitError("Opacity with options is not supported, skipping rest of file.")
			return false
		}
		s.parseScalar(fs, "opacity", &p.Opacity)
	case "Ns":
		s.parseScalar(fs, "specular exponent", &p.SpecularExponent)
	case "Ni":
		s.parseScalar(fs, "refraction index", &p.RefractionIndex)
	case "map_Ka", "map_a":
		s.parseTextureMap(fs, &p.TextureAmbient)
	case "map_Kd", "map_d", "map_D":
		s.parseTextureMap(fs, &p.TextureDiffuse)
	case "map_Ks", "map_s":
		s.parseTextureMap(fs, &p.TextureSpecular)
	default:
		s.emitError(fmt.Sprintf("Unknown keyword '%s', skipping line.", keyword))
	}

	return true
}

// Parse an RGB color. Color statements using a spectral curve or XYZ values
// (anything not starting with a digit) are rejected.
func (s *mtlSession) parseColor(fs *fieldScanner, name string, sig *Signal[types.Vec3]) {
	fs.skipSpace()
	if !isDigit(fs.peek()) {
		s.emitError(fmt.Sprintf("%s color not RGB, skipping it.", capitalize(name)))
		return
	}

	c, ok := fs.vec3()
	if !ok {
		s.emitError(fmt.Sprintf("Parse error reading %s color, skipping it.", name))
		return
	}
	if !fs.eof() {
		s.emitError(fmt.Sprintf("Ignoring information beyond third %s color value.", name))
	}
	sig.emit(c)
}

func (s *mtlSession) parseScalar(fs *fieldScanner, name string, sig *Signal[float64]) {
	v, ok := fs.scalar()
	if !ok {
		s.emitError(fmt.Sprintf("Parse error reading %s, skipping it.", name))
		return
	}
	if !fs.eof() {
		s.emitError(fmt.Sprintf("Ignoring information beyond %s value.", name))
	}
	sig.emit(v)
}

// Texture map options are not supported. They are reported and the last word
// of the statement is used as the filename. A statement without words reports
// an empty filename.
func (s *mtlSession) parseTextureMap(fs *fieldScanner, sig *Signal[string]) {
	fs.skipSpace()
	if fs.peek() == '-' {
		s.emitError("Skipping texture map options.")
	}

	var filename string
	if words := fs.words(); len(words) != 0 {
		filename = words[len(words)-1]
	}
	sig.emit(filename)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
