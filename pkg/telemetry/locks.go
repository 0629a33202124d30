package telemetry

import "sync"

// deviceLockStore hands out one mutex per device: device_id -> lock.
// Writes for the same device are serialized so last-seen/status updates
// stay consistent; different devices never contend.
type deviceLockStore struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *deviceLockStore) Get(deviceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	lock, exists := s.locks[deviceID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[deviceID] = lock
	}
	return lock
}
