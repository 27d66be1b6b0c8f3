// internal/recorder/file.go
// FileRecorder writes every ingested batch to a directory on the local
// filesystem, one JSON (optionally gzipped) file per batch, for offline
// replay and debugging.
//
//	<prefix>-20060102T150405.000.json[.gz]
package recorder

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smilerobotics/tf2-go/internal/rpc"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
)

// FileConfig controls FileRecorder behaviour.
type FileConfig struct {
	Dir       string         // destination directory (created if missing)
	Prefix    string         // filename prefix (default "tf2")
	Compress  bool           // gzip output
	Timezone  *time.Location // nil => UTC
	FlushSync bool           // fsync file after write
	Perm      os.FileMode    // file mode (default 0644)
}

// FileRecorder persists ingested batches to disk.
type FileRecorder struct {
	cfg FileConfig
}

// NewFileRecorder validates cfg, creates Dir if needed, and returns a ready
// FileRecorder.
func NewFileRecorder(cfg FileConfig) (*FileRecorder, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "tf2"
	}
	if cfg.Perm == 0 {
		cfg.Perm = 0o644
	}
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &FileRecorder{cfg: cfg}, nil
}

// Record writes one ingested batch to a new file; it never blocks the caller
// waiting on anything but local disk I/O.
func (r *FileRecorder) Record(batch []tf2.StampedTransform, static bool) error {
	if len(batch) == 0 {
		return nil
	}
	data, err := rpc.EncodeBatch(batch, static)
	if err != nil {
		return err
	}

	ts := time.Now().In(r.cfg.Timezone).Format("20060102T150405.000")
	fname := fmt.Sprintf("%s-%s.json", r.cfg.Prefix, ts)
	if r.cfg.Compress {
		fname += ".gz"
	}
	path := filepath.Join(r.cfg.Dir, fname)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, r.cfg.Perm)
	if err != nil {
		return err
	}
	defer f.Close()

	if r.cfg.Compress {
		gw := gzip.NewWriter(f)
		if _, err := gw.Write(data); err != nil {
			_ = gw.Close()
			return err
		}
		if err := gw.Close(); err != nil {
			return err
		}
	} else if _, err := f.Write(data); err != nil {
		return err
	}

	if r.cfg.FlushSync {
		_ = f.Sync()
	}
	return nil
}

// Close is a no-op; present so FileRecorder can satisfy an io.Closer-shaped
// optional dependency in callers that defer Close unconditionally.
func (r *FileRecorder) Close() error { return nil }
