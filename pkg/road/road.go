package road

// Lanes is the number of lanes on the road
const Lanes = 3

// Geometry describes where the road sits on screen. The road runs vertically
// through the viewport; lane 0 is the leftmost lane.
type Geometry struct {
	ScreenWidth float64 `json:"screen_width"`
	RoadWidth   float64 `json:"road_width"`
	CarWidth    float64 `json:"car_width"` // Scaled width of the player's car, used for the lateral clamp
}

// DefaultGeometry returns an 800px wide scene with a 300px three-lane road
func DefaultGeometry() Geometry {
	return Geometry{
		ScreenWidth: 800,
		RoadWidth:   300,
		CarWidth:    40,
	}
}

// LaneWidth returns the width of a single lane
func (g Geometry) LaneWidth() float64 {
	return g.RoadWidth / Lanes
}

// Center returns the screen X of the road's centre line
func (g Geometry) Center() float64 {
	return g.ScreenWidth / 2
}

// Left returns the screen X of the road's left edge
func (g Geometry) Left() float64 {
	return g.Center() - g.RoadWidth/2
}

// Right returns the screen X of the road's right edge
func (g Geometry) Right() float64 {
	return g.Left() + g.RoadWidth
}

// LaneCenterX returns the screen X of the centre of the given lane.
// Out of range lanes are clamped to the nearest edge lane.
func (g Geometry) LaneCenterX(lane int) float64 {
	if lane < 0 {
		lane = 0
	}
	if lane >= Lanes {
		lane = Lanes - 1
	}
	return g.Left() + g.LaneWidth()*(float64(lane)+0.5)
}

// DividerXs returns the screen X of each dashed divider between lanes
func (g Geometry) DividerXs() []float64 {
	xs := make([]float64, 0, Lanes-1)
	for i := 1; i < Lanes; i++ {
		xs = append(xs, g.Left()+float64(i)*g.LaneWidth())
	}
	return xs
}

// PlayerBounds returns the lateral range the player's car centre may occupy
// without its body leaving the road
func (g Geometry) PlayerBounds() (min, max float64) {
	half := g.CarWidth / 2
	return g.Left() + half, g.Right() - half
}

// Verges returns the screen X of the middle of the grass strip on each side
// of the road, used to anchor roadside vegetation
func (g Geometry) Verges(offset float64) (left, right float64) {
	return g.Left() - offset, g.Right() + offset
}
