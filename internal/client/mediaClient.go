package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"pageturn/internal/config"
	"pageturn/internal/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// MediaStore turns a locally buffered upload into a durable public URL.
type MediaStore interface {
	Upload(ctx context.Context, artifact *model.UploadArtifact) (string, error)
}

func NewMediaStore(cfg *config.Media) (MediaStore, error) {
	switch cfg.Provider {
	case "cloudinary", "":
		return NewCloudinaryStore(cfg)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported media provider %q", cfg.Provider)
	}
}

type cloudinaryStoreImpl struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg *config.Media) (MediaStore, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &cloudinaryStoreImpl{
		cld:    cld,
		folder: cfg.Folder,
	}, nil
}

func (s *cloudinaryStoreImpl) Upload(ctx context.Context, artifact *model.UploadArtifact) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, artifact.Path, uploader.UploadParams{
		Folder: s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure url")
	}

	return resp.SecureURL, nil
}

type s3StoreImpl struct {
	uploader *s3manager.Uploader
	bucket   string
	folder   string
}

func NewS3Store(cfg *config.Media) (MediaStore, error) {
	if cfg.S3.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.S3.Region),
	}
	if cfg.S3.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
	}
	if cfg.S3.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("init aws session: %w", err)
	}

	return &s3StoreImpl{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3.Bucket,
		folder:   cfg.Folder,
	}, nil
}

func (s *s3StoreImpl) Upload(ctx context.Context, artifact *model.UploadArtifact) (string, error) {
	f, err := os.Open(artifact.Path)
	if err != nil {
		return "", fmt.Errorf("open upload artifact: %w", err)
	}
	defer f.Close()

	key := path.Join(s.folder, uuid.NewString()+filepath.Ext(artifact.Filename))

	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if artifact.ContentType != "" {
		input.ContentType = aws.String(artifact.ContentType)
	}

	out, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}

	return out.Location, nil
}
