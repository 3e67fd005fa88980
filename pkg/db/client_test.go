package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type txProbe struct {
	ID    int
	Label string
}

func newClientTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:db_client_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&txProbe{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTxCommitsOnNilError(t *testing.T) {
	t.Parallel()

	conn := newClientTestDB(t)
	client := &Client{conn: conn}

	if err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&txProbe{Label: "kept"}).Error
	}); err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	var count int64
	if err := conn.Model(&txProbe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	conn := newClientTestDB(t)
	client := &Client{conn: conn}
	sentinel := errors.New("abort")

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&txProbe{Label: "discarded"}).Error; err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	var count int64
	if err := conn.Model(&txProbe{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave 0 rows, got %d", count)
	}
}

func TestPingAndAccessor(t *testing.T) {
	t.Parallel()

	conn := newClientTestDB(t)
	client := &Client{conn: conn}

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if client.DB() != conn {
		t.Fatal("DB() should expose the underlying connection")
	}
}
