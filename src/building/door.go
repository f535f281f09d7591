package building

import "sync/atomic"

// DoorMutex is the elevator entrance: only one passenger can pass at a time.
// Claims never block; a contended claim fails and the caller retries later.
type DoorMutex struct {
	claimed atomic.Bool
}

// Claim returns true and marks the door claimed iff it was free.
func (m *DoorMutex) Claim() bool {
	return m.claimed.CompareAndSwap(false, true)
}

// Release marks the door free. Only the holder may call it.
func (m *DoorMutex) Release() {
	m.claimed.Store(false)
}

func (m *DoorMutex) Claimed() bool {
	return m.claimed.Load()
}
