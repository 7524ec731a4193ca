package database

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    _ "github.com/go-sql-driver/mysql"
)

// Pool sizing.  The booking transaction holds court row locks for its
// whole duration, so the pool is kept moderate rather than letting
// lock holders pile up under load.
const (
    maxOpenConns    = 25
    maxIdleConns    = 25
    connMaxLifetime = 30 * time.Minute
    pingTimeout     = 5 * time.Second
)

// Open connects to MySQL and verifies the connection before the
// server starts accepting bookings.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    // parseTime maps DATETIME columns onto time.Time; loc=UTC keeps
    // booking instants consistent with the engine's UTC dates.
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
        auth, host, port, name)

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(maxOpenConns)
    db.SetMaxIdleConns(maxIdleConns)
    db.SetConnMaxLifetime(connMaxLifetime)

    ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        return nil, err
    }
    return db, nil
}
