package app

import (
	"crypto/rand"
	"math/big"

	"github.com/dkeye/Meet/internal/domain"
)

const (
	DefaultRoomIDLength = 6
	roomIDAlphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewRoomID returns n random upper-case base36 characters.
func NewRoomID(n int) domain.RoomID {
	max := big.NewInt(int64(len(roomIDAlphabet)))
	b := make([]byte, n)
	for i := range b {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand: " + err.Error())
		}
		b[i] = roomIDAlphabet[k.Int64()]
	}
	return domain.RoomID(b)
}
