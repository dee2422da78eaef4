package models

import "time"

// Signature is the transient artifact captured when an order is closed. It
// is not persisted as its own entity; its stored location is attached to
// the order row and the payload goes straight to the closure pipeline.
type Signature struct {
	OrderCode  string
	Image      []byte
	CapturedAt time.Time
}
