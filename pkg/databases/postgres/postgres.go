package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const pingTimeout = 1 * time.Second

// Config carries the connection settings. DSN and URL render the two
// formats consumers need: key=value pairs for sqlx, a postgres:// URL for
// golang-migrate.
type Config struct {
	Host    string
	Port    string
	User    string
	Pwd     string
	DbName  string
	SslMode string
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.User, c.DbName, c.Pwd, c.SslMode)
}

func (c Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Pwd),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     c.DbName,
		RawQuery: "sslmode=" + c.SslMode,
	}

	return u.String()
}

type PgDB struct {
	db  *sqlx.DB
	log *slog.Logger
}

func New(ctx context.Context, log *slog.Logger, cfg Config) (*PgDB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pg := &PgDB{db: db, log: log}

	if err = pg.ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("postgres connected",
		slog.String("host", cfg.Host),
		slog.String("db", cfg.DbName))

	return pg, nil
}

func (pg *PgDB) GetDB() *sqlx.DB {
	return pg.db
}

func (pg *PgDB) Close() error {
	return pg.db.Close()
}

func (pg *PgDB) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pg.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	return nil
}
