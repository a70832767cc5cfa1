package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/logging"
	"github.com/soltgard/battleforge/internal/service"
	"github.com/soltgard/battleforge/internal/storage"
)

// startTimeoutScanner runs the background sweep that auto-plays battles
// whose action deadline has passed, so a walked-away player (or a client
// that never polled the AI turn) cannot wedge a battle forever.
func startTimeoutScanner(repo storage.Repository, eng *engine.Engine, actionTimeout time.Duration) {
	workerID := uuid.NewString()
	logging.Info("timeout scanner started", logging.Fields{constants.LogFieldWorkerID: workerID})
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			service.ScanTimedOutBattles(repo, eng, actionTimeout)
		}
	}()
}
