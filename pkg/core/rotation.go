package core

// Rotate drops the oldest entries of s until at most max remain, returning
// how many were dropped. A max of zero or less disables rotation. Rotation
// keeps the newest tail of the storage order, so applying it twice with the
// same cap is a no-op.
func Rotate(s *Store, max int) int {
	if max <= 0 || len(s.Entries) <= max {
		return 0
	}
	dropped := len(s.Entries) - max
	kept := make([]Entry, max)
	copy(kept, s.Entries[dropped:])
	s.Entries = kept
	return dropped
}
