package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Storage 将文件上传到 S3 的 uploads/ 前缀下
type S3Storage struct {
	Client s3iface.S3API
	Bucket string
	Region string
}

// NewS3Storage 使用默认凭证链创建 S3 存储
func NewS3Storage(bucket, region string) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &S3Storage{
		Client: s3.New(sess),
		Bucket: bucket,
		Region: region,
	}, nil
}

// Driver 存储类型
func (s *S3Storage) Driver() string {
	return "s3"
}

// Save 上传对象并返回公开URL
func (s *S3Storage) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	// PutObject 需要可 Seek 的 body，上传大小已在入口处限制
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := UploadPrefix + "/" + filename
	_, err = s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.ObjectURL(key), nil
}

// ObjectURL 对象的虚拟主机风格URL
func (s *S3Storage) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key)
}
