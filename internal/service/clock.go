package service

import "time"

// Clock abstracts time.Now so policy windows (cancellation lead time, coupon
// validity, cache TTL) are testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return realClock{} }

// fixedClock is used by tests.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) Clock { return fixedClock{t: t} }
