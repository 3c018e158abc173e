package app

import (
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a recipient whose send buffer is full.
type Policy interface {
	OnBackPressure(room domain.RoomID, slow core.Recipient) BackpressureAction
}

// SimplePolicy kicks slow connections; closing the transport runs the
// regular disconnect path.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, core.Recipient) BackpressureAction {
	return KickMember
}
