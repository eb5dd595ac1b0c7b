// Package audit records admin actions for the settings/logs page.
package audit

import (
	"context"
	"strings"
)

// Recorder receives one event per successful mutation.
type Recorder interface {
	Record(ctx context.Context, action, details string)
}

type Nop struct{}

func (Nop) Record(context.Context, string, string) {}

// Multi fans an event out to several recorders in order.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, action, details string) {
	for _, r := range m {
		if r != nil {
			r.Record(ctx, action, details)
		}
	}
}

type userKey struct{}

const DefaultUser = "admin"

// WithUser attaches the acting user to ctx.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey{}, strings.TrimSpace(user))
}

func UserFrom(ctx context.Context) string {
	if u, ok := ctx.Value(userKey{}).(string); ok && u != "" {
		return u
	}
	return DefaultUser
}
