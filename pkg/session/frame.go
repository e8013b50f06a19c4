package session

import (
	"github.com/golangdaddy/taxidash/pkg/scroll"
	"github.com/golangdaddy/taxidash/pkg/traffic"
	"github.com/golangdaddy/taxidash/pkg/vehicle"
)

// AgentView is a traffic car with its lane resolved to a screen X
type AgentView struct {
	traffic.Agent
	X float64
}

// Frame is everything the renderer needs to draw one tick
type Frame struct {
	Tick          uint64
	Speed         float64
	SpeedFraction float64 // |Speed| / MaxSpeed, drives the HUD speed bar
	SteeringAngle float64
	MaxSteering   float64 // Steering limit at the current speed
	Distance      float64
	Pose          vehicle.Pose

	Agents  []AgentView
	Markers []scroll.Element
	Bushes  []scroll.Element
	Trees   []scroll.Element // Sorted by Depth, back to front
}
