package main

import (
	"context"
	"log"
	"time"

	"learntechnotes-backend/internal/token"
)

// startTokenSweeper drops expired download tokens on a fixed interval.
// Redemption checks expiry itself; the sweep only bounds memory held by
// links that were never clicked.
func startTokenSweeper(ctx context.Context, store *token.Store, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if purged := store.PurgeExpired(); purged > 0 {
					log.Printf("token sweeper: purged %d expired download tokens", purged)
				}
			}
		}
	}()
}
