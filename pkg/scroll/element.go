package scroll

// Kind is what a scrolling element represents
type Kind int

const (
	KindMarker Kind = iota // Dashed lane divider segment
	KindBush
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindBush:
		return "bush"
	case KindTree:
		return "tree"
	}
	return "unknown"
}

// DepthOrdered reports whether elements of this kind are painted in order of
// their root position. Trees overlap each other vertically; markers and
// bushes are flat.
func (k Kind) DepthOrdered() bool {
	return k == KindTree
}

// Element is a lane marker or piece of roadside vegetation. Elements are never
// destroyed; they are moved back to the spawn line when they scroll off.
type Element struct {
	X, Y    float64 // Screen position of the element's centre
	BaseX   float64 // Horizontal anchor that X is re-jittered around on recycle
	Depth   float64 // Paint order key, higher paints later (in front)
	Kind    Kind
	Variant int     // Sprite variant
	Scale   float64 // Sprite scale
	Height  float64 // Scaled sprite height
}

// Root returns the screen Y where the element meets the ground
func (e Element) Root() float64 {
	return e.Y + e.Height/2
}
