package core

import "github.com/dkeye/Meet/internal/domain"

// Recipient is one addressable endpoint of a fan-out.
type Recipient struct {
	ID   domain.ConnectionID
	Conn SignalConnection
}

// PublishResult reports delivery stats/backpressure to coordinator.
type PublishResult struct {
	SendTo  int
	Dropped []Recipient
}

// Publish delivers f to every recipient except the one with id skip.
// An empty skip delivers to all of them.
func Publish(to []Recipient, skip domain.ConnectionID, f Frame) PublishResult {
	res := PublishResult{}
	for _, r := range to {
		if skip != "" && r.ID == skip {
			continue
		}
		if err := r.Conn.TrySend(f); err != nil {
			res.Dropped = append(res.Dropped, r)
			continue
		}
		res.SendTo++
	}
	return res
}
