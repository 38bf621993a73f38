package main

import (
	"context"
	"log"
	"os"

	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/cache"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/entitlements"
	"github.com/FanSeatApp/FanSeat/internal/pkg/env"
)

// subscriptions:check-expired — cron entrypoint. Runs one expiration sweep
// and exits. Safe to invoke any number of times per day: the status update
// is conditional and a Redis lock skips overlapping runs.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	sweeper := entitlements.NewSweeper(repository.GetGlobalFactory().GetSubscriptionRepository())
	sweeper.Lock = cache.NewLock("subscriptions:sweep:lock")

	result, err := sweeper.RunOnce(context.Background())
	if err != nil {
		log.Printf("sweep failed: %v", err)
		os.Exit(1)
	}

	log.Printf("sweep done: scanned=%d expired=%d skipped=%d failed=%d",
		result.Scanned, result.Expired, result.Skipped, result.Failed)
}
