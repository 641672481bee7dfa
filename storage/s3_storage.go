package storage

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type s3Storage struct {
	Client     *s3.Client
	BucketName string
}

// NewS3Storage initializes a storage system that reads the openings log
// from an S3 bucket.
func NewS3Storage(client *s3.Client, bucketName string) *s3Storage {
	return &s3Storage{Client: client, BucketName: bucketName}
}

func (s *s3Storage) Read(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrDoesNotExist
		}
		return nil, errors.Wrapf(err, "failed to get object %s", key)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "can not read object body")
	}
	return data, nil
}

func (s *s3Storage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var matchedFiles []string
	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.BucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list S3 objects")
		}

		for _, obj := range page.Contents {
			matchedFiles = append(matchedFiles, *obj.Key)
		}
	}

	return matchedFiles, nil
}
