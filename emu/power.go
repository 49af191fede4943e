package emu

import "time"

// PowerConfig holds the battery governor thresholds. Frame counts, so
// at sixty frames per second 120 is two seconds.
type PowerConfig struct {
	// Consecutive silent frames before the amplifier powers down.
	SilenceFrames uint32

	// Consecutive non-gameplay frames before the backlight dims.
	IdleFrames uint32

	// Backlight percentages for the two states.
	BacklightActive uint8
	BacklightIdle   uint8

	// Frame periods for the pacing sleep. Gameplay paces at FrameTime;
	// attract mode paces at AttractFrameTime, which may be longer to
	// save power. Zero values fall back to the native 60 Hz period.
	FrameTime        time.Duration
	AttractFrameTime time.Duration
}

// DefaultPowerConfig returns the thresholds the device ships with: two
// seconds of silence kills the amplifier, thirty seconds outside
// gameplay dims the panel to a quarter, and both game modes pace at
// the native rate.
func DefaultPowerConfig() PowerConfig {
	return PowerConfig{
		SilenceFrames:    120,
		IdleFrames:       1800,
		BacklightActive:  50,
		BacklightIdle:    25,
		FrameTime:        frameTime,
		AttractFrameTime: frameTime,
	}
}
