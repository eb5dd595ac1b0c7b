package audit

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/library-admin/internal/store"
)

// StartRetention runs a daily job at localTime ("HH:MM") in tzName that
// deletes audit entries older than keepDays.
// Call once at startup: audit.StartRetention(ctx, st, 90, "03:00", "UTC")
func StartRetention(ctx context.Context, st store.AuditStore, keepDays int, localTime, tzName string) {
	if keepDays <= 0 {
		keepDays = 90
	}
	go func() {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			loc = time.Local
		}
		h, m := parseClock(localTime)

		for {
			now := time.Now().In(loc)
			next := nextRun(now, h, m)
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				Prune(ctx, st, keepDays, time.Now())
			}
		}
	}()
}

// Prune removes entries older than keepDays relative to now.
func Prune(ctx context.Context, st store.AuditStore, keepDays int, now time.Time) {
	cutoff := now.AddDate(0, 0, -keepDays)
	n, err := st.PruneAudit(ctx, cutoff)
	if err != nil {
		log.Printf("[retention] prune audit log failed: %v", err)
		return
	}
	log.Printf("[retention] pruned %d audit entries older than %d days", n, keepDays)
}

func parseClock(s string) (h, m int) {
	h, m = 3, 0
	if parts := strings.Split(s, ":"); len(parts) == 2 {
		if v, err := strconv.Atoi(parts[0]); err == nil && v >= 0 && v < 24 {
			h = v
		}
		if v, err := strconv.Atoi(parts[1]); err == nil && v >= 0 && v < 60 {
			m = v
		}
	}
	return h, m
}

func nextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
