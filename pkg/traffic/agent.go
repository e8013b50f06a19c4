package traffic

import "fmt"

// Lane identifies one of the road's three lanes
type Lane int

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight
)

// LaneCount is the number of lanes traffic can occupy
const LaneCount = 3

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneCenter:
		return "center"
	case LaneRight:
		return "right"
	}
	return fmt.Sprintf("lane(%d)", int(l))
}

// Agent is a computer-controlled car.
// Position is a screen Y in the player's frame of reference: smaller values
// are further up the screen, i.e. further ahead.
type Agent struct {
	ID           int64
	Lane         Lane
	Position     float64
	Speed        float64 // Current speed in pixels per tick
	DesiredSpeed float64 // Speed the agent returns to when nothing blocks it
	Variant      int     // Cosmetic body variant
}
