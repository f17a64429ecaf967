package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// localDSN is used when no database URL is configured.
const localDSN = "host=localhost user=postgres password=postgres dbname=bizops port=5432 sslmode=disable"

// NormalizeDSN adds sslmode=require and search_path=public to URL-style DSNs
// that do not set them. Managed Postgres providers usually need both.
func NormalizeDSN(dsn string) string {
	if dsn == "" {
		return localDSN
	}
	for _, kv := range []string{"sslmode=require", "search_path=public"} {
		key := kv[:strings.Index(kv, "=")+1]
		if strings.Contains(dsn, key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + kv
	}
	return dsn
}

func NewLogger(cfg DatabaseConfig) logger.Interface {
	level := logger.Warn
	switch strings.ToLower(cfg.LogLevel) {
	case "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: cfg.SlowThreshold,
			LogLevel:      level,
			Colorful:      true,
		},
	)
}

// ConnectDB opens Postgres and stores the handle in DB.
func ConnectDB(cfg DatabaseConfig) error {
	db, err := gorm.Open(postgres.Open(NormalizeDSN(cfg.URL)), &gorm.Config{Logger: NewLogger(cfg)})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := db.Exec(`SET search_path TO public`).Error; err != nil {
		log.Printf("set search_path: %v", err)
	}
	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		log.Printf("set timezone: %v", err)
	}

	var dbName, currentUser string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	log.Printf("DB connected: db=%s user=%s", dbName, currentUser)

	DB = db
	return nil
}
