package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var mu sync.Mutex
var seededRand *rand.Rand

func init() {
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerateReferenceID produces a ledger reference id, unique enough for the
// uniqueIndex on withdrawals. entityID is mixed in for traceability and may be
// zero when no entity exists yet.
func GenerateReferenceID(entityID uint) string {
	mu.Lock()
	defer mu.Unlock()

	nanoPart := time.Now().UnixNano() % 1000000
	randPart := seededRand.Intn(900) + 100

	return fmt.Sprintf("MJB-%06d%03d%d", nanoPart, randPart, entityID)
}
