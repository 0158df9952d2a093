package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Healthcheck returns a readiness condition that verifies the pool by
// running a trivial query through a scoped session. Compatible with
// health.Condition.
func Healthcheck(m *Manager) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		err := m.Session(ctx, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, "SELECT 1")
			return err
		})
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
