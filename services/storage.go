package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tolvuleiga/config"
)

// ErrObjectNotFound is returned by Download when the object is missing or
// has been removed from the bucket.
var ErrObjectNotFound = errors.New("object not found")

const storageCallTimeout = 10 * time.Second

// ObjectStorage is the slice of the object store the fulfillment pipeline
// uses: receipt PDFs in a private bucket, product images in public ones.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	Download(ctx context.Context, bucket, path string) ([]byte, error)
	Delete(ctx context.Context, bucket string, paths []string) error
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
	ListFolder(ctx context.Context, bucket, prefix string) ([]string, error)
}

type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
}

// NewS3Storage builds an S3 client from config. A non-empty endpoint points
// the client at a local S3-compatible stack (MinIO etc.), which also needs
// path-style addressing.
func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(creds),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3Storage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Storage) Delete(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	objects := make([]types.ObjectIdentifier, 0, len(paths))
	for _, p := range paths {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(p)})
	}
	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{Objects: objects},
	})
	return err
}

func (s *S3Storage) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *S3Storage) ListFolder(ctx context.Context, bucket, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}
