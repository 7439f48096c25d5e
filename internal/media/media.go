package media

import (
	"context"
	"fmt"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

type Config struct {
	Bucket       string
	UploadURLTTL time.Duration
}

// UploadTicket tells the admin UI where to PUT the file and the public URL
// it will be served from afterwards.
type UploadTicket struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	PublicURL string `json:"public_url"`
}

// Service issues V4 signed upload URLs so product images go straight from
// the admin browser to the bucket without passing through the API.
type Service struct {
	client *storage.Client
	cfg    *Config
}

func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("new storage client: %w", err)
	}
	return &Service{
		client: client,
		cfg:    cfg,
	}, nil
}

// SignedUploadURL issues an upload ticket for one image. The object key is
// namespaced per product and randomized so re-uploads never overwrite.
func (s *Service) SignedUploadURL(ctx context.Context, productID, filename, contentType string) (*UploadTicket, error) {
	objectKey := fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(), path.Ext(filename))

	url, err := s.client.Bucket(s.cfg.Bucket).SignedURL(objectKey, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		ContentType: contentType,
		Expires:     time.Now().Add(s.cfg.UploadURLTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("sign upload url for %s: %w", objectKey, err)
	}

	return &UploadTicket{
		UploadURL: url,
		ObjectKey: objectKey,
		PublicURL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.cfg.Bucket, objectKey),
	}, nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
