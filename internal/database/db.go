package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the students table when it does not exist yet.  The
// two history sequences live in JSON columns on the same row, keeping one
// document per seat.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS students (
	    seat            VARCHAR(32)  NOT NULL,
	    name            VARCHAR(255) NOT NULL DEFAULT '',
	    mobile          VARCHAR(32)  NOT NULL DEFAULT '',
	    attendance      TINYINT(1)   NOT NULL DEFAULT 0,
	    fee_paid        TINYINT(1)   NOT NULL DEFAULT 0,
	    join_date       DATETIME     NULL,
	    fee             DOUBLE       NOT NULL DEFAULT 500,
	    shift           VARCHAR(64)  NOT NULL DEFAULT '',
	    payment_history JSON         NOT NULL,
	    fee_history     JSON         NOT NULL,
	    created_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	    updated_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	    PRIMARY KEY (seat)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create students table: %w", err)
	}
	return nil
}
