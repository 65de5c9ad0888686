package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	appconfig "giftly-be/internal/config"
	"giftly-be/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Uploader stores media files and returns a publicly reachable URL.
type Uploader interface {
	Upload(ctx context.Context, ownerID, subpath, filename, contentType string, body io.Reader) (string, error)
}

type s3Uploader struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewS3Uploader(ctx context.Context, cfg appconfig.Storage) (Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &s3Uploader{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (u *s3Uploader) Upload(ctx context.Context, ownerID, subpath, filename, contentType string, body io.Reader) (string, error) {
	key := buildKey(ownerID, subpath, filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.FromCtx(ctx).Error("s3 upload failed",
			zap.String("bucket", u.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	logger.FromCtx(ctx).Info("uploaded object", zap.String("key", key))
	return u.publicBase + "/" + key, nil
}

// buildKey namespaces objects by owner and keeps names collision free
// regardless of what the client uploads.
func buildKey(ownerID, subpath, filename string) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)

	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)

	if subpath == "" {
		return path.Join(ownerID, name)
	}
	return path.Join(ownerID, subpath, name)
}
