package emu

// Button bitmask for SetButtons.
const (
	BtnUp uint8 = 1 << iota
	BtnDown
	BtnLeft
	BtnRight
	BtnCoin
)

// Virtual coin/start sequencer states. A single physical button inserts
// a coin and presses start, with hardware-realistic timing between the
// two pulses.
const (
	coinIdle = iota
	coinPulse
	coinGap
	startPulse
	waitRelease
)

// Sequencer phase lengths in frames, 60 frames per second.
const (
	coinPulseFrames = 6
	coinGapFrames   = 30
	startFrames     = 6
)

// TiltConfig holds the hysteresis thresholds for tilt steering. On must
// be larger than Off or the directions chatter at the boundary.
type TiltConfig struct {
	ThresholdOn  int8
	ThresholdOff int8
}

// DefaultTiltConfig returns the thresholds tuned on the device.
func DefaultTiltConfig() TiltConfig {
	return TiltConfig{ThresholdOn: 25, ThresholdOff: 15}
}

// TiltReader supplies pitch and roll from an inclinometer. Degrees,
// signed, zero when the device sits flat.
type TiltReader interface {
	Tilt() (pitch, roll int8, err error)
}

// Input tracks button and tilt state and presents it on the IN0 and IN1
// ports. Update runs once per frame before the port reads.
type Input struct {
	cfg  TiltConfig
	tilt TiltReader

	buttons uint8

	coinState int
	coinTimer int

	tiltUp    bool
	tiltDown  bool
	tiltLeft  bool
	tiltRight bool
}

// NewInput creates input state. tilt may be nil when no inclinometer is
// fitted; steering then comes from SetButtons alone.
func NewInput(cfg TiltConfig, tilt TiltReader) *Input {
	return &Input{cfg: cfg, tilt: tilt}
}

// SetButtons replaces the host button state for the coming frame.
func (in *Input) SetButtons(buttons uint8) {
	in.buttons = buttons
}

// Update samples the tilt sensor and advances the coin/start sequencer.
func (in *Input) Update() {
	in.updateTilt()
	in.updateCoin()
}

func (in *Input) updateTilt() {
	if in.tilt == nil {
		return
	}
	pitch, roll, err := in.tilt.Tilt()
	if err != nil {
		// Sensor glitch, steer straight rather than stick a direction
		in.tiltUp, in.tiltDown, in.tiltLeft, in.tiltRight = false, false, false, false
		return
	}

	// Tilting the top edge toward the player is up
	upDown := -pitch
	leftRight := -roll

	on, off := in.cfg.ThresholdOn, in.cfg.ThresholdOff

	if in.tiltUp {
		if upDown < off {
			in.tiltUp = false
		}
	} else if upDown >= on {
		in.tiltUp = true
		in.tiltDown = false
	}
	if in.tiltDown {
		if upDown > -off {
			in.tiltDown = false
		}
	} else if upDown <= -on {
		in.tiltDown = true
		in.tiltUp = false
	}

	if in.tiltLeft {
		if leftRight > -off {
			in.tiltLeft = false
		}
	} else if leftRight <= -on {
		in.tiltLeft = true
		in.tiltRight = false
	}
	if in.tiltRight {
		if leftRight < off {
			in.tiltRight = false
		}
	} else if leftRight >= on {
		in.tiltRight = true
		in.tiltLeft = false
	}
}

func (in *Input) updateCoin() {
	switch in.coinState {
	case coinIdle:
		if in.buttons&BtnCoin != 0 {
			in.coinState = coinPulse
			in.coinTimer = 0
		}
	case coinPulse:
		in.coinTimer++
		if in.coinTimer >= coinPulseFrames {
			in.coinState = coinGap
			in.coinTimer = 0
		}
	case coinGap:
		in.coinTimer++
		if in.coinTimer >= coinGapFrames {
			in.coinState = startPulse
			in.coinTimer = 0
		}
	case startPulse:
		in.coinTimer++
		if in.coinTimer >= startFrames {
			in.coinState = waitRelease
		}
	case waitRelease:
		if in.buttons&BtnCoin == 0 {
			in.coinState = coinIdle
		}
	}
}

// ReadIN0 returns the joystick and coin port, active low.
//
//	bit 0 up, bit 1 left, bit 2 right, bit 3 down, bit 5 coin
func (in *Input) ReadIN0() uint8 {
	v := uint8(0xFF)
	if in.buttons&BtnUp != 0 || in.tiltUp {
		v &^= 0x01
	}
	if in.buttons&BtnLeft != 0 || in.tiltLeft {
		v &^= 0x02
	}
	if in.buttons&BtnRight != 0 || in.tiltRight {
		v &^= 0x04
	}
	if in.buttons&BtnDown != 0 || in.tiltDown {
		v &^= 0x08
	}
	if in.coinState == coinPulse {
		v &^= 0x20
	}
	return v
}

// ReadIN1 returns the start button port, active low. Bit 5 is 1P start.
func (in *Input) ReadIN1() uint8 {
	v := uint8(0xFF)
	if in.coinState == startPulse || in.coinState == waitRelease {
		v &^= 0x20
	}
	return v
}

// Reset returns the sequencer and tilt latches to idle.
func (in *Input) Reset() {
	in.buttons = 0
	in.coinState = coinIdle
	in.coinTimer = 0
	in.tiltUp, in.tiltDown, in.tiltLeft, in.tiltRight = false, false, false, false
}
