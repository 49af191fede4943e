package emu

// Frames to ignore after power on while the program boots and its work
// RAM settles. Three seconds at sixty frames per second.
const warmupFrames = 180

// Monitor watches the program's work RAM to spot the moment attract
// mode begins, which is when the promotional clip plays. The clip runs
// at most once per attract session: a new game rearms it.
type Monitor struct {
	mem *Memory

	lastLives   uint8
	lastMode    uint8
	gameStarted bool
	videoPlayed bool
	frames      uint32
}

// NewMonitor creates a monitor over the memory image.
func NewMonitor(mem *Memory) *Monitor {
	return &Monitor{mem: mem}
}

// CheckAttractStart runs once per frame and reports whether attract
// mode just began and the clip has not yet played this session.
func (m *Monitor) CheckAttractStart() bool {
	m.frames++
	if m.frames < warmupFrames {
		return false
	}

	lives := m.mem.Lives()
	mode := m.mem.GameMode()

	// A game starting rearms the clip for the attract mode that follows
	if !m.gameStarted && mode == ModeStarting && m.lastMode == ModeAttract {
		m.gameStarted = true
		m.videoPlayed = false
	}

	if mode == ModeAttract && m.lastMode != ModeAttract && !m.videoPlayed {
		m.videoPlayed = true
		m.gameStarted = false
		m.lastLives = lives
		m.lastMode = mode
		return true
	}

	m.lastLives = lives
	m.lastMode = mode
	return false
}

// Lives returns the lives-remaining byte, for diagnostics.
func (m *Monitor) Lives() uint8 {
	return m.mem.Lives()
}

// Reset returns the monitor to its power-on state, warm-up included.
func (m *Monitor) Reset() {
	m.lastLives = 0
	m.lastMode = 0
	m.gameStarted = false
	m.videoPlayed = false
	m.frames = 0
}
