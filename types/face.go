package types

import "fmt"

// FaceIndex references the attributes of a single polygon vertex. Indices are
// 1-based; a zero index means that the attribute was not specified. Negative
// indices count backwards from the last defined attribute of that kind.
type FaceIndex struct {
	Vertex   int
	TexCoord int
	Normal   int
}

// Returns true if the index tuple includes a texture coordinate.
func (fi FaceIndex) HasTexCoord() bool {
	return fi.TexCoord != 0
}

// Returns true if the index tuple includes a normal.
func (fi FaceIndex) HasNormal() bool {
	return fi.Normal != 0
}

// Format the tuple using the v/t/n face syntax.
func (fi FaceIndex) String() string {
	switch {
	case fi.HasTexCoord() && fi.HasNormal():
		return fmt.Sprintf("%d/%d/%d", fi.Vertex, fi.TexCoord, fi.Normal)
	case fi.HasNormal():
		return fmt.Sprintf("%d//%d", fi.Vertex, fi.Normal)
	case fi.HasTexCoord():
		return fmt.Sprintf("%d/%d", fi.Vertex, fi.TexCoord)
	}
	return fmt.Sprintf("%d", fi.Vertex)
}
