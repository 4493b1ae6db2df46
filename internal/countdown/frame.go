package countdown

// FrameLen is the display's addressable cell count: a 128x32 panel in
// terminal mode gives 16 columns by 4 rows. Every frame is exactly this
// long so a full-buffer overwrite never scrolls or leaves stale cells.
const FrameLen = 64

// Column offsets of the two hh:mm:ss fields. Elapsed sits on the first
// row, target directly below it on the second.
const (
	elapsedOffset = 4
	targetOffset  = 20
)

// Frame is one fixed-width display image.
type Frame [FrameLen]byte

// Digits is a wall-clock style (hours, minutes, seconds) triple.
type Digits struct {
	Hours   uint32
	Minutes uint32
	Seconds uint32
}

// Split converts whole seconds into display digits. Minutes and hours are
// reduced modulo their unit, so 3661 s renders as 01:01:01 and not 1:61:01.
func Split(sec uint32) Digits {
	return Digits{
		Hours:   sec / 3600 % 24,
		Minutes: sec / 60 % 60,
		Seconds: sec % 60,
	}
}

// Render formats the state into a Frame: both durations as zero-padded
// hh:mm:ss at their fixed offsets, every other cell a space.
func Render(s State) Frame {
	var f Frame
	for i := range f {
		f[i] = ' '
	}
	putClock(&f, elapsedOffset, Split(s.Elapsed))
	putClock(&f, targetOffset, Split(s.Target))
	return f
}

func putClock(f *Frame, off int, d Digits) {
	put2(f, off, d.Hours)
	f[off+2] = ':'
	put2(f, off+3, d.Minutes)
	f[off+5] = ':'
	put2(f, off+6, d.Seconds)
}

func put2(f *Frame, off int, v uint32) {
	f[off] = byte('0' + v/10%10)
	f[off+1] = byte('0' + v%10)
}

// String returns the frame as a string, for logging and tests.
func (f Frame) String() string {
	return string(f[:])
}

// Row returns one 16-cell display row, 0 through 3.
func (f Frame) Row(n int) string {
	return string(f[n*16 : (n+1)*16])
}
