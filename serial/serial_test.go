package serial

import "testing"

func newTestPort() *Port {
	return &Port{buf: make([]byte, 4)}
}

func TestExtractLineReturnsNilWithoutDelimiter(t *testing.T) {
	p := newTestPort()
	p.append([]byte("FF,Ham"))
	if got := p.extractLine('\r'); got != nil {
		t.Fatalf("extractLine() = %q, want nil (no delimiter yet)", got)
	}
}

func TestExtractLineReturnsCompleteLineAndShiftsRemainder(t *testing.T) {
	p := newTestPort()
	p.append([]byte("FF\rGARBAGE"))

	got := p.extractLine('\r')
	if string(got) != "FF\r" {
		t.Fatalf("extractLine() = %q, want \"FF\\r\"", got)
	}
	if string(p.buf[:p.buflen]) != "GARBAGE" {
		t.Fatalf("remainder = %q, want \"GARBAGE\"", p.buf[:p.buflen])
	}
}

func TestAppendGrowsBufferGeometrically(t *testing.T) {
	p := newTestPort()
	p.append([]byte("12345678901234567890"))
	if p.buflen != 20 {
		t.Fatalf("buflen = %d, want 20", p.buflen)
	}
	if len(p.buf) < 20 {
		t.Fatalf("buf capacity = %d, want >= 20", len(p.buf))
	}
}

func TestExtractLineLeavesPartialPacketBuffered(t *testing.T) {
	p := newTestPort()
	p.append([]byte("partial"))
	if got := p.extractLine('\r'); got != nil {
		t.Fatalf("extractLine() = %q, want nil; a short read must never be consumed", got)
	}
	p.append([]byte("\r"))
	got := p.extractLine('\r')
	if string(got) != "partial\r" {
		t.Fatalf("extractLine() = %q, want \"partial\\r\"", got)
	}
}
