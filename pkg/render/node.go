package render

// Node is one primitive in a render tree. The set of implementations is
// closed: Line, Path, Circle, Text, and Group. Serialization switches
// exhaustively over these five, so adding a kind means extending the
// serializer too.
type Node interface {
	node()
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1, X2, Y2 float64
	Class          string  // space-separated fabrication classes
	Width          float64 // stroke width in mm; 0 means the class default
	Round          bool    // rounded line caps (slider channels)
}

// Path is an arbitrary SVG path, used for arcs and slider channels.
type Path struct {
	D     string
	Class string
	Width float64
	Round bool
}

// Circle is a full circle outline centered on (CX, CY).
type Circle struct {
	CX, CY, R float64
	Class     string
	Width     float64
}

// Text is a label. Anchor follows SVG text-anchor semantics; Rotate is a
// rotation in degrees about the text position.
type Text struct {
	X, Y   float64
	Body   string
	Class  string
	Size   float64 // font size in mm
	Anchor string  // "start", "middle", "end"; empty means "middle"
	Rotate float64
}

// Group nests children under a shared class and optional transform.
type Group struct {
	Class     string
	Transform string
	Children  []Node
}

func (Line) node()   {}
func (Path) node()   {}
func (Circle) node() {}
func (Text) node()   {}
func (Group) node()  {}
