package cboe

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestSnapshotStore_RoundTrip(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store, err := NewSnapshotStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	if err := store.Save("SPX", []byte(chainPayload)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	ch, err := store.Load("SPX")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ch.Ticker != "SPX" || ch.Spot != 4500.25 || len(ch.Quotes) != 2 {
		t.Errorf("snapshot round trip lost data: %+v", ch)
	}
}

func TestSnapshotStore_MissingTicker(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store, err := NewSnapshotStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	if _, err := store.Load("NDX"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSnapshotStore_OverwriteKeepsLatest(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store, err := NewSnapshotStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	stale := `{"data":{"close":4400.0,"options":[{"option":"SPX240315C04400000","iv":0.2,"open_interest":1}]}}`
	if err := store.Save("SPX", []byte(stale)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save("SPX", []byte(chainPayload)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	ch, err := store.Load("SPX")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ch.Spot != 4500.25 {
		t.Errorf("expected latest snapshot, got spot %v", ch.Spot)
	}
}
