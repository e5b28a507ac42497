package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
)

// SnapshotWriter 在设置更新后写出静态 JSON 快照
type SnapshotWriter struct {
	PublicDir string
}

// NewSnapshotWriter 创建快照写入器
func NewSnapshotWriter(publicDir string) *SnapshotWriter {
	return &SnapshotWriter{PublicDir: publicDir}
}

// WriteSettings 写出 <public>/settings.json 和 <public>/uploads/contact.json
func (w *SnapshotWriter) WriteSettings(settings *models.SiteSettings) error {
	if err := writeJSONFile(filepath.Join(w.PublicDir, "settings.json"), settings.Public()); err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(w.PublicDir, UploadPrefix, "contact.json"), settings.Contact())
}

func writeJSONFile(target string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(target), err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filepath.Base(target), err)
	}

	// 先写临时文件再重命名，避免读到半个文件
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(target), err)
	}
	return nil
}
