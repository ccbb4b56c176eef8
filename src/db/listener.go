package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	listenRetryMin = time.Second
	listenRetryMax = 30 * time.Second
)

// ListenMoves holds a dedicated connection on the moves channel and calls onChange for every
// notification until ctx is done. Lost connections are re-established with backoff; onChange
// also runs after each reconnect so writes missed while disconnected are picked up.
func ListenMoves(ctx context.Context, dsn string, onChange func()) {
	backoff := listenRetryMin
	for {
		err := listen(ctx, dsn, onChange, func() { backoff = listenRetryMin })
		if ctx.Err() != nil {
			return
		}
		log.Printf("[MOVE_LISTENER] Connection lost: %v (retrying in %s)", err, backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > listenRetryMax {
			backoff = listenRetryMax
		}
	}
}

func listen(ctx context.Context, dsn string, onChange func(), connected func()) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{MovesChannel}.Sanitize()); err != nil {
		return err
	}
	log.Printf("[MOVE_LISTENER] Listening on %s", MovesChannel)
	connected()
	onChange()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if n.Channel == MovesChannel {
			onChange()
		}
	}
}
