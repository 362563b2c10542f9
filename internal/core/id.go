package core

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// TimestampID returns a decimal Unix-millisecond identifier. When the clock
// has not advanced past the last issued value the result is bumped by one,
// so ids stay unique under back-to-back creation.
func TimestampID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}
