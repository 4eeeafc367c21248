package device

import "testing"

func TestWriteClampsIntoRange(t *testing.T) {
	d := New(1, "LeftWheel", RoleEffector, KindInt, 1, -128, 127, 0)

	d.Write(200)
	if got := d.Read(); got != 127 {
		t.Fatalf("Read() = %d, want clamped to 127", got)
	}

	d.Write(-500)
	if got := d.Read(); got != -128 {
		t.Fatalf("Read() = %d, want clamped to -128", got)
	}
}

func TestWriteRejectedOnSensorRole(t *testing.T) {
	d := New(2, "LeftFloor", RoleSensor, KindInt, 1, 0, 100, 0)
	d.Write(50)
	if got := d.Read(); got != 0 {
		t.Fatalf("Read() = %d, want unchanged 0 (write on sensor must be a no-op)", got)
	}
}

func TestWriteSetsFiredAndWritten(t *testing.T) {
	d := New(3, "RightWheel", RoleEffector, KindInt, 1, -128, 127, 0)
	d.Write(50)
	if !d.Written() {
		t.Fatal("Written() = false after Write, want true")
	}
	d.CommitEvent()
	if !d.Event() {
		t.Fatal("Event() = false after CommitEvent following a fired write, want true")
	}
	d.ClearWritten()
	if d.Written() {
		t.Fatal("Written() = true after ClearWritten, want false")
	}
}

func TestPutDoesNotSetWritten(t *testing.T) {
	d := New(4, "LeftFloor", RoleSensor, KindInt, 1, 0, 100, 0)
	d.Put(40)
	if d.Written() {
		t.Fatal("Written() = true after Put, want false (Put never sets written)")
	}
	if got := d.Read(); got != 40 {
		t.Fatalf("Read() = %d, want 40", got)
	}
}

func TestEventIsExactlyOneTickAfterFired(t *testing.T) {
	d := New(5, "LeftProximity", RoleSensor, KindInt, 1, 0, 255, 0)

	d.Put(10) // fires during tick t

	d.CommitEvent() // end of tick t: event := fired
	if !d.Event() {
		t.Fatal("Event() = false in tick t+1, want true")
	}

	d.CommitEvent() // end of tick t+1: no new fire happened
	if d.Event() {
		t.Fatal("Event() = true in tick t+2 with no intervening write, want false")
	}
}

func TestArrayElementsClampIndependently(t *testing.T) {
	d := New(6, "Acceleration", RoleSensor, KindInt, 3, -32768, 32767, 0)
	d.PutAt(0, 40000)
	d.PutAt(1, -40000)
	d.PutAt(2, 10)

	got := d.ReadArray()
	want := []int{32767, -32768, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadArray()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	d := New(7, "Buzzer", RoleEffector, KindFloat, 1, 0, 167772.15, 0)
	d.WriteFloat(440.5)
	if got := d.ReadFloat(); got != 440.5 {
		t.Fatalf("ReadFloat() = %v, want 440.5", got)
	}
}
