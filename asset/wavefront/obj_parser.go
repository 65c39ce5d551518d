package wavefront

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/potato3d/objparser/asset"
	"github.com/potato3d/objparser/log"
	"github.com/potato3d/objparser/types"
)

// ObjParser reads wavefront geometry (.obj) streams and reports what it finds
// through its signals. It does not build any scene representation; connect
// slots to the signals of interest before calling Parse.
//
// A parser may be reused for any number of streams and Parse may be re-entered
// from a slot, but a parser must not be shared between goroutines.
//
// Known limitations:
//   - w coordinates of vertices are reported as trailing content
//   - group lines are reported verbatim, multiple group names are not split
//   - the mtllib filename list is reported as a single filename
type ObjParser struct {
	// Resolve negative face indices into absolute 1-based indices using the
	// number of attributes defined so far. Enabled by default.
	ConvertNegativeIndices bool

	// Parse errors and warnings.
	Error Signal[Message]

	// Comment lines. The text starts two characters after the '#' marker.
	Comment Signal[Message]

	Vertex   Signal[types.Vec3]
	Normal   Signal[types.Vec3]
	TexCoord Signal[types.Vec3]

	// A face is reported as FaceBegin(element count), one FaceElement for
	// each element that parsed successfully and a closing FaceEnd.
	FaceBegin   Signal[int]
	FaceElement Signal[types.FaceIndex]
	FaceEnd     Trigger

	ObjectName Signal[string]
	GroupName  Signal[string]

	// Material library referenced by the geometry.
	MaterialLib Signal[string]

	// Material to use for the faces that follow.
	MaterialUse Signal[string]

	logger log.Logger
}

// Create a new geometry parser with negative index conversion enabled.
func NewObjParser() *ObjParser {
	return &ObjParser{
		ConvertNegativeIndices: true,
		logger:                 log.New("wavefront obj parser"),
	}
}

// Parse the geometry file at path. Local paths and http/https URLs are
// supported. If the file cannot be opened a single Error with line 0 is
// emitted and no parsing takes place.
func (p *ObjParser) ParseFile(path string) error {
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

// Parse a geometry stream. Malformed lines are reported through the Error
// signal and skipped. The returned error is only set if reading from r fails.
func (p *ObjParser) Parse(r io.Reader) error {
	start := time.Now()
	s := &objSession{parser: p}

	lines, _, err := scanLines(r, func(lineNum int, line string) bool {
		s.lineNum = lineNum
		s.parseLine(line)
		return true
	})

	p.logf(
		"parsed %d lines (%d vertices, %d normals, %d texcoords) in %d ms",
		lines, s.numVertices, s.numNormals, s.numTexCoords, time.Since(start).Nanoseconds()/1e6,
	)
	return err
}

func (p *ObjParser) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debugf(format, args...)
	}
}

// objSession holds the state of a single Parse call.
type objSession struct {
	parser  *ObjParser
	lineNum int

	// Number of attributes defined so far; used for resolving negative indices.
	numVertices  int
	numNormals   int
	numTexCoords int
}

func (s *objSession) emitError(msg string) {
	s.parser.Error.emit(Message{Line: s.lineNum, Text: msg})
}

func (s *objSession) parseLine(line string) {
	p := s.parser

	keyword, kwStart, fs, ok := readKeyword(s.lineNum, line, &p.Comment)
	if !ok {
		return
	}

	switch keyword {
	case "v":
		v, ok := fs.vec3()
		if !ok {
			s.emitError("Parse error reading vertex, skipping it.")
			return
		}
		if !fs.eof() {
			s.emitError("Ignoring information beyond third vertex value.")
		}
		p.Vertex.emit(v)
		s.numVertices++
	case "vn":
		n, ok := fs.vec3()
		if !ok {
			s.emitError("Parse error reading normal, skipping it.")
			return
		}
		if !fs.eof() {
			s.emitError("Ignoring information beyond third normal value.")
		}
		p.Normal.emit(n)
		s.numNormals++
	case "vt":
		t, ok := s.parseTexCoord(fs)
		if !ok {
			s.emitError("Parse error reading texture coordinate, skipping it.")
			return
		}
		if !fs.eof() {
			s.emitError("Ignoring information beyond third texcoord value.")
		}
		p.TexCoord.emit(t)
		s.numTexCoords++
	case "f", "fo":
		elements := fs.words()
		if len(elements) == 0 {
			s.emitError("Parse error reading face list, skipping it.")
			return
		}

		p.FaceBegin.emit(len(elements))
		for _, elem := range elements {
			if idx, ok := s.parseIndexTuple(elem); ok {
				p.FaceElement.emit(idx)
			}
		}
		p.FaceEnd.emit()
	case "o":
		p.ObjectName.emit(remainderAfterKeyword(line, kwStart))
	case "g":
		p.GroupName.emit(remainderAfterKeyword(line, kwStart))
	case "mtllib":
		// A bare mtllib reports an empty name.
		p.MaterialLib.emit(strings.Join(fs.words(), " "))
	case "usemtl":
		fs.skipSpace()
		name, ok := fs.word()
		if !ok {
			s.emitError("Parse error reading material name, skipping it.")
			return
		}
		fs.skipSpace()
		if !fs.eof() {
			s.emitError("Ignoring information beyond first material name.")
		}
		p.MaterialUse.emit(name)
	default:
		s.emitError(fmt.Sprintf("Unknown keyword '%s', skipping line.", keyword))
	}
}

// Parse a texture coordinate. Only the first component is mandatory; missing
// components default to zero.
func (s *objSession) parseTexCoord(fs *fieldScanner) (types.Vec3, bool) {
	var t types.Vec3
	var ok bool

	fs.skipSpace()
	if t[0], ok = fs.float(); !ok {
		return t, false
	}

	for i := 1; i < 3; i++ {
		fs.skipSpace()
		if fs.eof() {
			break
		}
		if t[i], ok = fs.float(); !ok {
			return t, false
		}
	}
	fs.skipSpace()
	return t, true
}

// Parse a face element. The following formats are supported:
//   - vertexIndex
//   - vertexIndex/uvIndex
//   - vertexIndex//normalIndex
//   - vertexIndex/uvIndex/normalIndex
//
// Failures are reported and the element is skipped.
func (s *objSession) parseIndexTuple(elem string) (types.FaceIndex, bool) {
	var idx types.FaceIndex

	fs := newFieldScanner(elem)
	v, ok := fs.integer()
	idx.Vertex = v

	if ok && fs.peek() == '/' {
		fs.advance()

		// A texcoord is only read when a digit follows the separator, so a
		// signed texcoord index fails the element.
		if isDigit(fs.peek()) {
			idx.TexCoord, ok = fs.integer()
		}

		if ok && fs.peek() == '/' {
			fs.advance()
			idx.Normal, ok = fs.integer()
		}
	}

	if !ok || !fs.eof() {
		s.emitError("Parse error reading face element, skipping it.")
		return idx, false
	}

	if s.parser.ConvertNegativeIndices {
		s.convertNegativeIndices(&idx)
	}
	return idx, true
}

// Negative indices reference attributes relative to the end of the list
// defined so far; -1 selects the last one.
func (s *objSession) convertNegativeIndices(idx *types.FaceIndex) {
	if idx.Vertex < 0 {
		idx.Vertex += s.numVertices + 1
	}
	if idx.TexCoord < 0 {
		idx.TexCoord += s.numTexCoords + 1
	}
	if idx.Normal < 0 {
		idx.Normal += s.numNormals + 1
	}
}
