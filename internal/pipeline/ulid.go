package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULIDs are 26-character Crockford base32 strings: a 48-bit millisecond
// timestamp followed by 80 bits of which the first 16 count up within a
// millisecond and the rest are random. They sort by creation time, which
// keeps index keys for one formula in document order.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [10]byte
	rand.Read(b[2:])
	binary.BigEndian.PutUint16(b[:2], lastSeq)
	return encodeULID(ts, b)
}

func encodeULID(ts uint64, entropy [10]byte) string {
	var out [26]byte
	for i := 9; i >= 0; i-- {
		out[i] = crockford[ts&31]
		ts >>= 5
	}
	hi := binary.BigEndian.Uint16(entropy[:2])
	lo := binary.BigEndian.Uint64(entropy[2:])
	for i := 25; i >= 10; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | uint64(hi&31)<<59
		hi >>= 5
	}
	return string(out[:])
}
