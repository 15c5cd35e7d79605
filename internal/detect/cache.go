package detect

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inspectgrid/internal/model"
	"inspectgrid/internal/util/logx"
)

// CacheDir holds inferred column caches. Tests point it elsewhere.
var CacheDir = filepath.Join(os.TempDir(), "inspectgrid-columns-cache")

// cacheKey derives a stable key from the absolute file path.
func cacheKey(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.New("empty path")
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", err
	}
	h := sha1.Sum([]byte(abs))
	return hex.EncodeToString(h[:]), nil
}

func cachePath(key string) string {
	return filepath.Join(CacheDir, fmt.Sprintf("columns_%s.json", key))
}

// LoadColumnsFromCache reads cached columns for a data file.
func LoadColumnsFromCache(filePath string) ([]model.Column, bool) {
	key, err := cacheKey(filePath)
	if err != nil {
		return nil, false
	}
	f, err := os.Open(cachePath(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	var cols []model.Column
	if err := json.NewDecoder(f).Decode(&cols); err != nil || len(cols) == 0 {
		return nil, false
	}
	return cols, true
}

// SaveColumnsToCache writes columns keyed by file path, atomically.
func SaveColumnsToCache(filePath string, cols []model.Column) error {
	key, err := cacheKey(filePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(CacheDir, 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	p := cachePath(key)
	tmp := p + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cache create: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cols); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("cache rename: %w", err)
	}
	logx.Infof("detect: cached columns saved to %s", p)
	return nil
}
