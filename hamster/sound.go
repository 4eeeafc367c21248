package hamster

import "time"

// noteReleaseTail is the audible gap _hamster_note leaves after every
// played note, so consecutive notes never blur together.
const noteReleaseTail = 100 * time.Millisecond

// beepFrequency and beepDuration are the fixed tone _hamster_beep plays.
const (
	beepFrequency = 440
	beepDuration  = 200 * time.Millisecond
)

// Buzzer sets the buzzer frequency directly, cancelling any pending
// note (original_source's _hamster_buzzer).
func (r *Robot) Buzzer(hz float64) {
	r.Devices[IdxNote].Write(0)
	r.Devices[IdxBuzzer].WriteFloat(hz)
}

// Pitch sets the note device directly and silences the buzzer; a
// negative pitch is a no-op (original_source's _hamster_pitch).
func (r *Robot) Pitch(pitch float64) {
	if pitch < 0 {
		return
	}
	r.Devices[IdxBuzzer].WriteFloat(0)
	r.Devices[IdxNote].Write(int(pitch))
}

// Beep plays a short fixed tone: note off, buzzer at 440 Hz for 200 ms,
// buzzer off (original_source's _hamster_beep). Blocks the caller.
func (r *Robot) Beep() {
	r.Devices[IdxNote].Write(0)
	r.Devices[IdxBuzzer].WriteFloat(beepFrequency)
	time.Sleep(beepDuration)
	r.Devices[IdxBuzzer].WriteFloat(0)
}

// noteTimeout is the total duration _hamster_note waits for one note:
// beats * 60000 / bpm milliseconds.
func noteTimeout(beats, bpm float64) time.Duration {
	return time.Duration(beats * 60000 / bpm * float64(time.Millisecond))
}

// noteTail returns the release tail subtracted from the audible
// portion of a note whose total timeout exceeds it; zero otherwise.
func noteTail(timeout time.Duration) time.Duration {
	if timeout > noteReleaseTail {
		return noteReleaseTail
	}
	return 0
}

// Note plays pitch for the given number of beats at the robot's
// current tempo, per original_source's _hamster_note. pitch and beats
// are floats because beats is fractional in practice (e.g. a half
// beat); pitch is truncated toward zero before use. A non-positive
// beats count or a non-positive tempo is a no-op; a negative pitch is
// also a no-op. pitch == 0 silences the buzzer and waits the full
// timeout with no release tail. pitch > 0 writes the tone, waits
// timeout minus a 100 ms release tail (if the timeout exceeds it),
// clears the note, then waits out the tail — leaving an audible gap
// before the next note.
func (r *Robot) Note(pitch, beats float64) {
	if beats <= 0 {
		return
	}
	bpm := r.currentBPM()
	if bpm <= 0 {
		return
	}
	p := int(pitch)
	timeout := noteTimeout(beats, bpm)

	switch {
	case p == 0:
		r.Devices[IdxBuzzer].WriteFloat(0)
		r.Devices[IdxNote].Write(0)
		time.Sleep(timeout)
	case p > 0:
		tail := noteTail(timeout)
		r.Devices[IdxBuzzer].WriteFloat(0)
		r.Devices[IdxNote].Write(p)
		time.Sleep(timeout - tail)
		r.Devices[IdxNote].Write(0)
		if tail > 0 {
			time.Sleep(tail)
		}
	}
}
