package encoder

// SDR is a sparse distributed representation: a fixed-length bit vector
// with a small fixed number of active bits. Each element is 0 or 1.
type SDR []byte

// FrameSDR is the concatenation of one SDR per coefficient of a frame,
// in coefficient order.
type FrameSDR []byte

// ActiveCount returns the number of set bits.
func (s SDR) ActiveCount() int {
	count := 0
	for _, b := range s {
		if b != 0 {
			count++
		}
	}
	return count
}

// ActiveCount returns the number of set bits.
func (f FrameSDR) ActiveCount() int {
	return SDR(f).ActiveCount()
}

// String renders the bits as a run of '0' and '1' characters.
func (s SDR) String() string {
	return bitString(s)
}

// String renders the bits as a run of '0' and '1' characters.
func (f FrameSDR) String() string {
	return bitString(f)
}

func bitString(bits []byte) string {
	out := make([]byte, len(bits))
	for i, b := range bits {
		if b != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
