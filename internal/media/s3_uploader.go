package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/interfaces"
	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// Compile-time check to ensure S3Uploader implements MediaUploader
var _ interfaces.MediaUploader = (*S3Uploader)(nil)

// Seams for unit tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}
)

// Config holds the settings for the S3-backed uploader.
type Config struct {
	Region        string
	Bucket        string
	BaseEndpoint  string // Optional; set for S3-compatible stores (MinIO etc.)
	PublicBaseURL string // Base of the durable URL returned for uploaded objects
	AccessKey     string
	SecretKey     string
}

// S3Uploader stores local files in an S3 bucket and returns a durable public URL.
type S3Uploader struct {
	cfg    Config
	logger *zap.Logger
}

// NewS3Uploader creates a new S3-backed MediaUploader.
func NewS3Uploader(cfg Config, logger *zap.Logger) *S3Uploader {
	return &S3Uploader{
		cfg:    cfg,
		logger: logger.Named("S3Uploader"),
	}
}

func (u *S3Uploader) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey,
			u.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.BaseEndpoint)
		}
	})

	return client, nil
}

// storageKey builds a date-partitioned object key preserving the file extension.
func storageKey(localPath string) string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(localPath))
}

// Upload stores the file at localPath in the bucket and returns its public URL.
// The local temp file is removed when the upload fails; no retries are performed.
func (u *S3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", models.ErrInvalidInput
	}

	f, err := os.Open(localPath)
	if err != nil {
		u.logger.Error("Failed to open local file for upload", zap.Error(err), zap.String("path", localPath))
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}
	defer f.Close()

	client, err := u.getClient(ctx)
	if err != nil {
		u.logger.Error("Failed to build S3 client", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	key := storageKey(localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error("Failed to upload file to S3", zap.Error(err), zap.String("key", key))
		// The locally saved temp file is useless once the upload failed.
		if rmErr := os.Remove(localPath); rmErr != nil {
			u.logger.Warn("Failed to remove local temp file after failed upload", zap.Error(rmErr), zap.String("path", localPath))
		}
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	url := strings.TrimSuffix(u.cfg.PublicBaseURL, "/") + "/" + key
	u.logger.Info("File uploaded successfully", zap.String("key", key), zap.String("url", url))
	return url, nil
}
