package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage 将文件写入 <public>/uploads 目录，由静态路由对外提供
type LocalStorage struct {
	PublicDir string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(publicDir string) *LocalStorage {
	return &LocalStorage{PublicDir: publicDir}
}

// Driver 存储类型
func (s *LocalStorage) Driver() string {
	return "local"
}

// Save 写入文件，返回 /uploads/<filename>
func (s *LocalStorage) Save(ctx context.Context, filename, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.PublicDir, UploadPrefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	target := filepath.Join(dir, filepath.Base(filename))
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return "/" + UploadPrefix + "/" + filepath.Base(filename), nil
}
