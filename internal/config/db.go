package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

func dbDSN() string {
	user := strings.TrimSpace(os.Getenv("DB_USER"))
	if user == "" {
		user = "root"
	}
	pass := os.Getenv("DB_PASS")
	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	if host == "" {
		host = "127.0.0.1:3306"
	}
	name := strings.TrimSpace(os.Getenv("DB_NAME"))
	if name == "" {
		name = "normadeck"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		user, pass, host, name)
}

// connectLocked opens and pings the database. dbMu must be held.
func connectLocked() error {
	db, err := sql.Open("mysql", dbDSN())
	if err != nil {
		return fmt.Errorf("abrir a base de dados: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping à base de dados: %w", err)
	}

	DB = db
	log.Println("ligação à base de dados MySQL estabelecida")
	return nil
}

// ConnectDB initializes the shared DB connection (idempotent).
func ConnectDB() *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB
	}
	if err := connectLocked(); err != nil {
		log.Fatalf("falha na ligação à base de dados: %v", err)
	}
	return DB
}

// EnsureDB verifies the shared handle still answers, connecting first when it
// was never opened. Unlike ConnectDB a failure comes back as an error, so
// probe endpoints can report it instead of killing the process.
func EnsureDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB == nil {
		return connectLocked()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
