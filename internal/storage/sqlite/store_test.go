package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"logstat/internal/storage"
	"logstat/internal/storage/storetest"
	"logstat/pkg/model"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		s, err := NewStore("")
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		return s
	})
}

func TestStore_FileBackedLoadAndQuery(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test_access_*.sqlite")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())
	tmpFile.Close()

	s, err := NewStore(tmpFile.Name())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now().Truncate(time.Second) // SQLite precision

	rows := []model.AccessLog{{
		IP:        "192.168.1.10",
		Timestamp: now,
		Method:    "GET",
		URL:       "/test",
		Status:    404,
		Size:      1024,
	}}
	if err := s.Load(ctx, rows); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Test QueryByIP
	logs, err := s.QueryByIP(ctx, "192.168.1.10", 10)
	if err != nil {
		t.Fatalf("QueryByIP failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("Expected 1 log, got %d", len(logs))
	} else {
		if !logs[0].Timestamp.Equal(now) {
			t.Errorf("Expected timestamp %v, got %v", now, logs[0].Timestamp)
		}
		if logs[0].Size != 1024 {
			t.Errorf("Expected size 1024, got %d", logs[0].Size)
		}
	}

	// Reopen: data persists in the file
	s.Close()
	s2, err := NewStore(tmpFile.Name())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()
	nf, err := s2.ByStatus(ctx, 404)
	if err != nil {
		t.Fatalf("ByStatus failed: %v", err)
	}
	if len(nf) != 1 {
		t.Errorf("Expected 1 log, got %d", len(nf))
	}
}
