package frame

// StartFlashAnimation blinks the title bar to draw attention without
// changing focus. Restarting an active animation resets its counter.
func (f *Frame) StartFlashAnimation() {
	if f.closed || f.ctx.Scheduler == nil {
		return
	}
	f.flashCounter = flashSteps
	if f.IsFlashing() {
		return
	}
	f.flashTask = f.ctx.Scheduler.Every(f.ctx.flashPeriod(), f.flashTick)
}

// IsFlashing reports whether the flash animation is running.
func (f *Frame) IsFlashing() bool {
	return f.flashTask != nil && f.flashTask.Active()
}

func (f *Frame) flashTick() {
	if f.closed || f.flashCounter <= 0 {
		f.stopFlash()
		return
	}
	f.InvalidateTitlebar()
	f.flashCounter--
	if f.flashCounter == 0 {
		f.stopFlash()
	}
}

func (f *Frame) stopFlash() {
	if f.flashTask != nil {
		f.flashTask.Stop()
	}
}
