package timing

import "math"

// Freq is a frequency in Hz.
type Freq float64

// Hz is the unit of Freq.
const Hz Freq = 1

// NCyclesLater returns the time n periods after now.
func (f Freq) NCyclesLater(n int, now VTimeInSec) VTimeInSec {
	if math.IsNaN(now) {
		panic("invalid time")
	}

	return now + VTimeInSec(float64(n)/float64(f))
}
