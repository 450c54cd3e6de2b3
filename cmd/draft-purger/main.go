package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	salespostgres "github.com/openretail/pos-api-server/internal/domains/sales/adapters/persistence/postgres"
	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	userpostgres "github.com/openretail/pos-api-server/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/openretail/pos-api-server/internal/platform/postgres"
)

const defaultDraftTTLDays = 30

// Housekeeping binary: removes draft orders older than DRAFT_TTL_DAYS
// and expired login sessions. Run it from cron or a scheduled job.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; nothing to purge")
	}

	orders := salespostgres.NewRepository(db)
	cutoff := time.Now().UTC().AddDate(0, 0, -draftTTLDaysFromEnv())
	filter := domain.Filter{
		domain.FilterStatus:  string(domain.StatusDraft),
		domain.FilterEndDate: cutoff.Format("2006-01-02"),
	}
	purged := 0
	for {
		// Deletions shrink the result set, so page one is re-read until
		// it drains or stops making progress.
		page, err := orders.ListOrders(ctx, filter)
		if err != nil {
			log.Fatalf("failed to list stale drafts: %v", err)
		}
		if len(page.Items) == 0 {
			break
		}
		deleted := 0
		for _, draft := range page.Items {
			if err := orders.DeleteOrder(ctx, draft.ID); err != nil {
				logger.Warn("failed to delete stale draft", slog.String("orderId", draft.ID), slog.String("error", err.Error()))
				continue
			}
			deleted++
		}
		purged += deleted
		if deleted == 0 {
			break
		}
	}

	sessions := userpostgres.NewSessionStore(db, sessionTTLFromEnv())
	if err := sessions.PurgeExpired(ctx); err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	log.Printf("purge completed: %d stale drafts removed, expired sessions cleared", purged)
}

func draftTTLDaysFromEnv() int {
	raw := strings.TrimSpace(os.Getenv("DRAFT_TTL_DAYS"))
	if raw == "" {
		return defaultDraftTTLDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultDraftTTLDays
	}
	return days
}

func sessionTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))
	if raw == "" {
		return userpostgres.DefaultSessionTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return userpostgres.DefaultSessionTTL
	}
	return time.Duration(hours) * time.Hour
}
