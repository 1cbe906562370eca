package connections

import (
	"elbow/pathfinding"
)

// Config holds the routing and drawing parameters shared by connectors.
type Config struct {
	Margin             float64 // clearance kept around shapes; also the escape stub length
	CornerRadius       float64 // desired radius of rounded corners
	GapOffset          float64 // distance left between a shape and an attached end
	TurnPenalty        float64 // score added per turn when ranking candidates
	DuplicateThreshold float64 // points closer than this are merged after auto routing
	CollinearThreshold float64 // tolerance for dropping points on a straight run
	HandleFactor       float64 // boundary handles need HandleFactor*Margin of length
	StrokeWidth        float64 // used to size arrowheads
}

// DefaultConfig returns the parameters used when a scene does not override them.
func DefaultConfig() Config {
	return Config{
		Margin:             20,
		CornerRadius:       8,
		GapOffset:          2,
		TurnPenalty:        30,
		DuplicateThreshold: 0.5,
		CollinearThreshold: 0.5,
		HandleFactor:       1.5,
		StrokeWidth:        2,
	}
}

// CalculatorOptions derives path calculator options from the config.
func (c Config) CalculatorOptions() pathfinding.Options {
	opts := pathfinding.DefaultOptions
	opts.TurnPenalty = c.TurnPenalty
	return opts
}
