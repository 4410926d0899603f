package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"farewatch/backend/internal/constants"
)

// InitPostgres connects sqlx to Postgres for price history, retrying
// briefly so the service survives a database that is still coming up.
func InitPostgres(dsn string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(constants.CreatePricePointsTable); err != nil {
		return nil, err
	}
	return conn, nil
}
