package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/AlchemistChaos/nt-2-sub001/config"
)

// PhotoService stores meal photos in S3 and hands back the public URL that
// gets attached to the meal row.
type PhotoService struct {
	s3Config *config.S3Config
}

func NewPhotoService(s3Config *config.S3Config) *PhotoService {
	return &PhotoService{s3Config: s3Config}
}

// UploadMealPhoto uploads the image bytes under a per-user key and returns
// the public URL.
func (s *PhotoService) UploadMealPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthorized
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty photo upload")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("meal-photos/%s/%s.jpg", userID, uuid.New())
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[PhotoService] uploaded meal photo %s", url)
	return url, nil
}
