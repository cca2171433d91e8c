package backend

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"recondash/internal/config"
	"recondash/internal/database"
	"recondash/internal/repository/sqlstore"
)

// Server queries a server-side database: a read-only SQLite file or PostgreSQL.
type Server struct {
	*lazy
}

var _ Backend = (*Server)(nil)

func NewServer(c config.DatabaseConfig, log *zap.Logger) (*Server, error) {
	d, err := sqlstore.DialectFor(c.Driver)
	if err != nil {
		return nil, err
	}
	open := func(context.Context) (*sql.DB, error) {
		if c.Driver == config.DriverPostgres {
			return database.NewPostgres(c)
		}
		return database.NewSQLite(c)
	}
	return &Server{lazy: newLazy("server", open, d, log)}, nil
}

func (*Server) Mode() config.Mode { return config.ModeServer }
