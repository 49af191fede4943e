package emu

// RunFrame performs one 60 Hz frame: a frame's worth of CPU cycles,
// the panel render with interleaved audio, input polling, the battery
// governor, the VBLANK interrupt and the attract clip check. With
// FramePacing on it then sleeps out the remainder of the frame period.
func (m *Machine) RunFrame() {
	start := m.now()
	m.audioRendered = 0

	m.runCPU(CyclesPerFrame)

	m.video.RenderFrame(m.renderAudio)
	m.serviceAudio(samplesPerFrame - m.audioRendered)

	m.input.Update()

	m.updateAmplifier()
	m.updateCPUProfile()
	m.updateBacklight()

	// The interrupt line stays asserted until the next frame's CPU
	// slice has had a chance to take it
	if m.bus.InterruptEnabled() {
		m.cpu.INT(true, m.bus.InterruptVector())
		m.intAsserted = true
	}

	if m.monitor.CheckAttractStart() && m.attract != nil {
		m.playAttract()
	}

	if m.cfg.FramePacing {
		period := m.cfg.Power.FrameTime
		if m.mem.GameMode() < ModeStarting {
			period = m.cfg.Power.AttractFrameTime
		}
		if elapsed := m.now().Sub(start); elapsed < period {
			m.sleep(period - elapsed)
		}
	}
}

func (m *Machine) runCPU(budget int) {
	consumed := 0
	for consumed < budget {
		consumed += m.cpu.StepCycles(budget - consumed)
	}
	if m.intAsserted {
		m.cpu.INT(false, 0)
		m.intAsserted = false
	}
}

// updateAmplifier powers the speaker amplifier down after sustained
// silence and back up the instant a voice opens. Mute wins over both.
func (m *Machine) updateAmplifier() {
	if m.hw.Power.Muted() {
		if m.ampOn {
			m.hw.Power.SetAmplifierPower(false)
			m.ampOn = false
		}
		m.silenceFrames = 0
		return
	}

	if Silent(m.bus.SoundRegisters()) {
		m.silenceFrames++
		if m.silenceFrames == m.cfg.Power.SilenceFrames && m.ampOn {
			m.hw.Power.SetAmplifierPower(false)
			m.ampOn = false
		}
		return
	}

	if !m.ampOn {
		m.hw.Power.SetAmplifierPower(true)
		m.ampOn = true
	}
	m.silenceFrames = 0
}

// updateCPUProfile keeps the host clock high during gameplay and drops
// it in attract mode. Edge triggered so the controller is only poked on
// transitions.
func (m *Machine) updateCPUProfile() {
	playing := m.mem.GameMode() >= ModeStarting

	if playing && m.lowPower {
		m.hw.Power.SetCPUProfile(CPUProfileHighPerf)
		m.lowPower = false
	} else if !playing && !m.lowPower {
		m.hw.Power.SetCPUProfile(CPUProfilePowersave)
		m.lowPower = true
	}
}

// updateBacklight dims the panel after sustained non-gameplay and
// restores it as soon as a game starts.
func (m *Machine) updateBacklight() {
	if m.mem.GameMode() >= ModeStarting {
		m.idleFrames = 0
	} else {
		m.idleFrames++
	}

	if m.idleFrames >= m.cfg.Power.IdleFrames {
		if m.backlight != m.cfg.Power.BacklightIdle {
			m.backlight = m.cfg.Power.BacklightIdle
			m.hw.Power.SetBacklight(m.backlight)
		}
	} else if m.backlight != m.cfg.Power.BacklightActive {
		m.backlight = m.cfg.Power.BacklightActive
		m.hw.Power.SetBacklight(m.backlight)
	}
}

// playAttract hands the panel to the clip player with the host clock
// boosted for decode, then drops back to attract power and clears any
// credits so the demo keeps running instead of waiting on start.
func (m *Machine) playAttract() {
	m.hw.Power.SetCPUProfile(CPUProfileHighPerf)
	m.lowPower = false

	// Decode errors end the clip early; the game continues regardless
	if err := m.attract.Play(); err != nil && m.cfg.OnAttractError != nil {
		m.cfg.OnAttractError(err)
	}

	m.hw.Power.SetCPUProfile(CPUProfilePowersave)
	m.lowPower = true

	m.mem.ClearCredits()
}
