package pose

// Config holds the tunable parameters of the stabilizer
type Config struct {
	// Constraints (radians)
	YawBias   float64 // Added to yaw, sign from handedness
	PitchBias float64 // Subtracted from pitch before clamping
	MinPitch  float64 // Lowest allowed pitch
	MaxPitch  float64 // Highest allowed pitch

	// Smoothing
	Rate float64 // Slerp amount per second; dt*Rate is clamped to [0, 1]
}

// DefaultConfig returns the stock hand aiming behaviour
func DefaultConfig() Config {
	return Config{
		YawBias:   DefaultYawBias,
		PitchBias: DefaultPitchBias,
		MinPitch:  DefaultMinPitch,
		MaxPitch:  DefaultMaxPitch,
		Rate:      DefaultRate,
	}
}

// SmoothConfig converts slower, for shaky hand tracking
func SmoothConfig() Config {
	cfg := DefaultConfig()
	cfg.Rate = 5
	return cfg
}

// SnappyConfig follows the hand closely
func SnappyConfig() Config {
	cfg := DefaultConfig()
	cfg.Rate = 20
	return cfg
}
