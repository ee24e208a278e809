package core

import "time"

// SeekOffsets are the skip sizes offered by the forward and back commands.
var SeekOffsets = []time.Duration{
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	20 * time.Second,
	30 * time.Second,
	45 * time.Second,
	60 * time.Second,
}

// SeekForward returns the position delta after current.
func SeekForward(current, delta time.Duration) time.Duration {
	return clampPosition(current + delta)
}

// SeekBack returns the position delta before current. Seeking before the
// start of the item lands on the start.
func SeekBack(current, delta time.Duration) time.Duration {
	return clampPosition(current - delta)
}

func clampPosition(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
