package service

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Per-battle serialization. The engine is single-writer by contract: every
// mutation of a battle goes through lockBattle so a turn resolution never
// races a concurrent submit, timeout scan or abandon for the same battle.
var battleLocks sync.Map

// aiTurnGroup collapses concurrent AI-turn requests for the same battle
// into one execution; duplicate callers share the first result.
var aiTurnGroup singleflight.Group

func lockBattle(battleID uint) func() {
	v, _ := battleLocks.LoadOrStore(battleID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func battleKey(battleID uint) string {
	return strconv.FormatUint(uint64(battleID), 10)
}
