package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
)

// UploadPrefix 上传文件的公共路径前缀
const UploadPrefix = "uploads"

var (
	// ErrUnsupportedFileType 文件扩展名不在允许列表中
	ErrUnsupportedFileType = errors.New("unsupported file type")

	unsafeNameChars = regexp.MustCompile(`[^a-z0-9]`)

	allowedExtensions = map[string]string{
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"webp": "image/webp",
		"svg":  "image/svg+xml",
		"ico":  "image/x-icon",
		"avif": "image/avif",
	}
)

// Storage 上传文件的存储后端
type Storage interface {
	// Save 保存文件并返回可公开访问的URL
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Driver() string
}

// New 根据配置创建存储后端
func New(cfg *config.Config) (Storage, error) {
	switch cfg.UploadDriver {
	case "s3":
		return NewS3Storage(cfg.S3Bucket, cfg.S3Region)
	case "local", "":
		return NewLocalStorage(cfg.PublicDir), nil
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", cfg.UploadDriver)
	}
}

// SanitizeFilename 生成对搜索引擎友好的文件名: <name>-<unix毫秒>.<ext>
// name 为原文件名第一个点之前的部分，非字母数字字符替换为 "-" 并转为小写
func SanitizeFilename(original string, now time.Time) (string, error) {
	original = path.Base(strings.ReplaceAll(original, "\\", "/"))

	ext := ""
	if i := strings.LastIndex(original, "."); i >= 0 {
		ext = strings.ToLower(original[i+1:])
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	base := original
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	base = unsafeNameChars.ReplaceAllString(strings.ToLower(base), "-")
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%s-%d.%s", base, now.UnixMilli(), ext), nil
}

// ContentTypeFor 根据扩展名返回 MIME 类型
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ct, ok := allowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
