package service

import (
	"bytes"
	"cert_portal_backend/internal/config"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveProvider 证书归档后端
type ArchiveProvider interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// LocalArchiveProvider 本地目录归档
type LocalArchiveProvider struct {
	Config *config.StorageConfig
}

func (p *LocalArchiveProvider) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, objectName)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", err
	}
	return dst, nil
}

// MinioArchiveProvider MinIO归档
type MinioArchiveProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioArchiveProvider(cfg *config.StorageConfig) (*MinioArchiveProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchiveProvider{Config: cfg, Client: client}, nil
}

func (p *MinioArchiveProvider) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return "/" + p.Config.MinioBucket + "/" + objectName, nil
}

// OSSArchiveProvider 阿里云OSS归档
type OSSArchiveProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSArchiveProvider(cfg *config.StorageConfig) (*OSSArchiveProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSArchiveProvider{Config: cfg, Client: client}, nil
}

func (p *OSSArchiveProvider) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(objectName, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, objectName), nil
}

// ArchiveService 已签发证书的留档副本。未配置 storage.type 时返回 nil，归档整体关闭
type ArchiveService struct {
	Provider ArchiveProvider
}

func NewArchiveService(cfg *config.Config) *ArchiveService {
	var provider ArchiveProvider
	switch cfg.Storage.Type {
	case "local":
		provider = &LocalArchiveProvider{Config: &cfg.Storage}
	case "minio":
		p, err := NewMinioArchiveProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	case "oss":
		p, err := NewOSSArchiveProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		return nil
	}
	return &ArchiveService{Provider: provider}
}

func (s *ArchiveService) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	return s.Provider.Put(ctx, objectName, data, contentType)
}
