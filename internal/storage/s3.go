package storage

import (
	"bytes"
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader is the part of the S3 upload manager the sink uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Sink uploads blobs to a bucket and returns the object location.
type S3Sink struct {
	Bucket   string
	Uploader Uploader
}

// NewS3Sink builds a sink from the default AWS credential chain.
func NewS3Sink(ctx context.Context, bucket, region string) (*S3Sink, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &S3Sink{
		Bucket:   bucket,
		Uploader: manager.NewUploader(s3.NewFromConfig(cfg)),
	}, nil
}

func (s *S3Sink) Store(ctx context.Context, name string, jpeg []byte) (string, error) {
	out, err := s.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(Key(name)),
		Body:        bytes.NewReader(jpeg),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return "", &StoreError{Name: name, Err: err}
	}
	if out.Location == "" {
		return "", &StoreError{Name: name, Err: errors.New("upload returned no location")}
	}
	return out.Location, nil
}
