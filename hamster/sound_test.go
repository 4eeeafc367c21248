package hamster

import (
	"testing"
	"time"
)

func TestNoteTimeoutComputesFromBeatsAndBpm(t *testing.T) {
	got := noteTimeout(2, 120) // 2 beats at 120 bpm = 1000ms
	want := time.Second
	if got != want {
		t.Fatalf("timeout = %v, want %v", got, want)
	}
}

func TestNoteTailOnlyAppliesAboveReleaseTail(t *testing.T) {
	if got := noteTail(50 * time.Millisecond); got != 0 {
		t.Fatalf("tail = %v, want 0 for a short note", got)
	}
	if got := noteTail(500 * time.Millisecond); got != noteReleaseTail {
		t.Fatalf("tail = %v, want %v", got, noteReleaseTail)
	}
}

func TestBuzzerCancelsPendingNote(t *testing.T) {
	r := NewRobot(0, nil)
	r.Devices[IdxNote].Write(50)
	r.Buzzer(440)
	if got := r.Devices[IdxNote].Read(); got != 0 {
		t.Fatalf("note = %d, want 0 after Buzzer", got)
	}
	if got := r.Devices[IdxBuzzer].ReadFloat(); got != 440 {
		t.Fatalf("buzzer = %v, want 440", got)
	}
}

func TestPitchCancelsBuzzerAndIgnoresNegative(t *testing.T) {
	r := NewRobot(0, nil)
	r.Devices[IdxBuzzer].WriteFloat(200)
	r.Pitch(-1)
	if got := r.Devices[IdxBuzzer].ReadFloat(); got != 200 {
		t.Fatalf("negative pitch should be a no-op, buzzer = %v", got)
	}

	r.Pitch(30)
	if got := r.Devices[IdxBuzzer].ReadFloat(); got != 0 {
		t.Fatalf("buzzer = %v, want 0 after Pitch", got)
	}
	if got := r.Devices[IdxNote].Read(); got != 30 {
		t.Fatalf("note = %d, want 30", got)
	}
}

func TestNoteNoopWhenTempoNotPositive(t *testing.T) {
	r := NewRobot(0, nil)
	r.bpm = 0
	r.Devices[IdxNote].Write(10)
	r.Note(40, 4) // would otherwise block; must return immediately
	if got := r.Devices[IdxNote].Read(); got != 10 {
		t.Fatalf("note = %d, want unchanged when tempo is non-positive", got)
	}
}

func TestNoteNoopOnNonPositiveBeats(t *testing.T) {
	r := NewRobot(0, nil)
	r.Devices[IdxNote].Write(10)
	r.Note(40, 0)
	if got := r.Devices[IdxNote].Read(); got != 10 {
		t.Fatalf("note = %d, want unchanged for zero beats", got)
	}
}
