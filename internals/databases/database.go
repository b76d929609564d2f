package database

import (
	"context"
	"log"
	"time"

	"sekolah_backend/internals/configs"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB membuka koneksi Postgres lewat pgx (PreferSimpleProtocol untuk PgBouncer).
func ConnectDB(cfg configs.DBConfig) (*gorm.DB, error) {
	log.Println("[INFO] Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.PostgresDSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 configs.NewGormLogger(cfg),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "gorm open")
	}
	if err := TunePool(db, cfg); err != nil {
		return nil, err
	}
	log.Println("[INFO] DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DBConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "pool tune")
	}
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// WarmUpQueries: ping ringan di background supaya pool terisi.
func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
