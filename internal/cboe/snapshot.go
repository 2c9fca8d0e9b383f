package cboe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

// SnapshotStore caches raw delayed-quotes payloads on disk, zstd-compressed,
// one file per ticker. Used as the fallback chain source when the CDN is
// unreachable and as the offline-mode source.
type SnapshotStore struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *zap.Logger
}

func NewSnapshotStore(dir string, logger *zap.Logger) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotStore{dir: dir, encoder: enc, decoder: dec, logger: logger}, nil
}

func (s *SnapshotStore) path(ticker string) string {
	return filepath.Join(s.dir, ticker+".json.zst")
}

// Save writes the raw payload for ticker. The write goes through a temp
// file and rename so a crash never leaves a truncated snapshot behind.
func (s *SnapshotStore) Save(ticker string, raw []byte) error {
	compressed := s.encoder.EncodeAll(raw, nil)

	dest := s.path(ticker)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved",
		zap.String("ticker", ticker),
		zap.Int("rawBytes", len(raw)),
		zap.Int("compressedBytes", len(compressed)),
	)
	return nil
}

// Load returns the decoded chain from the cached snapshot for ticker.
func (s *SnapshotStore) Load(ticker string) (*chain.Chain, error) {
	compressed, err := os.ReadFile(s.path(ticker))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	raw, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}

	return DecodeChain(raw, ticker)
}

// Close releases compressor resources.
func (s *SnapshotStore) Close() {
	s.encoder.Close()
	s.decoder.Close()
}
