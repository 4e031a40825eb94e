// Package timeutil holds time helpers shared by the CLI and the UI.
package timeutil

import "time"

// Clock supplies the current time so "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	FixedNow time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.FixedNow
}

func (c *FixedClock) SetNow(now time.Time) {
	c.FixedNow = now
}
