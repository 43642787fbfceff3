package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"voting-service/internal/config"
	"voting-service/internal/metrics"
	"voting-service/internal/retry"
)

// ErrUnavailable is returned when no connection could be established.
var ErrUnavailable = errors.New("database unavailable")

// Acquirer hands out a fresh connection that the caller must release.
type Acquirer interface {
	Acquire(ctx context.Context) (*pgx.Conn, error)
}

// Connector opens one unpooled connection per Acquire call.
type Connector struct {
	attempts int
	delay    time.Duration
	timeout  time.Duration
	log      *slog.Logger
	source   func() config.Database
	dial     func(ctx context.Context, connString string) (*pgx.Conn, error)
}

// NewConnector returns a Connector making up to attempts tries, delay apart.
// Each try is cut off after timeout; zero means no per-attempt limit.
func NewConnector(attempts int, delay, timeout time.Duration, log *slog.Logger) *Connector {
	if attempts < 1 {
		attempts = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Connector{
		attempts: attempts,
		delay:    delay,
		timeout:  timeout,
		log:      log,
		source:   config.DatabaseFromEnv,
		dial:     pgx.Connect,
	}
}

// Acquire connects to the store, retrying with a fixed delay. Location and
// credentials are re-read from the environment on every call. The returned
// error wraps ErrUnavailable once all attempts are spent.
func (c *Connector) Acquire(ctx context.Context) (*pgx.Conn, error) {
	var conn *pgx.Conn
	err := retry.DoWithRetry(ctx, c.attempts, c.delay, func(attempt int) error {
		var err error
		conn, err = c.connect(ctx)
		if err != nil {
			c.log.Warn("database connection failed, retrying",
				"attempt", attempt,
				"max_attempts", c.attempts,
				"error", err,
			)
			return err
		}
		c.log.Debug("database connection successful", "attempt", attempt)
		return nil
	})
	if err != nil {
		c.log.Error("could not connect to database after retries",
			"attempts", c.attempts,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return conn, nil
}

// Ping makes a single connection attempt and closes it right away.
func (c *Connector) Ping(ctx context.Context) error {
	conn, err := c.connect(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	Release(conn)
	return nil
}

func (c *Connector) connect(ctx context.Context) (*pgx.Conn, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	conn, err := c.dial(ctx, ConnString(c.source()))
	if err != nil {
		metrics.IncConnectAttempt("failure")
		return nil, err
	}
	metrics.IncConnectAttempt("success")
	return conn, nil
}

// ConnString renders db as a postgres URL. Host may include a port.
func ConnString(db config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   db.Host,
		Path:   "/" + db.Name,
	}
	if db.User != "" {
		u.User = url.UserPassword(db.User, db.Password)
	}
	return u.String()
}

// Release closes conn. It does not reuse the request context, so the
// connection is closed even when the request was canceled.
func Release(conn *pgx.Conn) {
	if conn == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = conn.Close(ctx)
}
