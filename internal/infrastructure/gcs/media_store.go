// Package gcs stores post and profile media in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"io"
	"path"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"socialnet/internal/domain/entity"
	"socialnet/pkg/helpers"
)

// Kind selects the object folder under an owner's prefix.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Upload is one pending media upload.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type MediaStore struct {
	client *storage.Client
	bucket string
}

func NewMediaStore(client *storage.Client, bucket string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket}
}

func (s *MediaStore) objectPath(ownerID string, kind Kind, filename string) string {
	return path.Join("socialmedia", ownerID, string(kind)+"s", uuid.NewString()+path.Ext(filename))
}

// Put uploads a single object under the owner's prefix and returns the asset
// descriptor to persist alongside the owning entity.
func (s *MediaStore) Put(ctx context.Context, ownerID string, kind Kind, up Upload) (entity.MediaAsset, error) {
	if s.client == nil || s.bucket == "" {
		return entity.MediaAsset{}, errors.New("media store not configured")
	}
	obj := s.objectPath(ownerID, kind, up.Filename)
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, obj, up.ContentType, up.Reader)
	if err != nil {
		return entity.MediaAsset{}, err
	}
	return entity.MediaAsset{URL: url, StorageID: obj}, nil
}

// PutAll uploads every item concurrently and waits for all of them. The first
// error wins but every upload still runs to completion.
func (s *MediaStore) PutAll(ctx context.Context, ownerID string, kind Kind, ups []Upload) ([]entity.MediaAsset, error) {
	assets := make([]entity.MediaAsset, len(ups))
	errs := make([]error, len(ups))

	var wg sync.WaitGroup
	for i, up := range ups {
		wg.Add(1)
		go func(i int, up Upload) {
			defer wg.Done()
			assets[i], errs[i] = s.Put(ctx, ownerID, kind, up)
		}(i, up)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return assets, nil
}

// Remove deletes a stored object. Missing objects are not an error.
func (s *MediaStore) Remove(ctx context.Context, storageID string) error {
	if s.client == nil || s.bucket == "" || storageID == "" {
		return nil
	}
	err := helpers.DeleteObject(ctx, s.client, s.bucket, storageID)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// RemoveAll deletes every asset concurrently and waits for all of them.
func (s *MediaStore) RemoveAll(ctx context.Context, assets []entity.MediaAsset) error {
	errs := make([]error, len(assets))

	var wg sync.WaitGroup
	for i, a := range assets {
		wg.Add(1)
		go func(i int, storageID string) {
			defer wg.Done()
			errs[i] = s.Remove(ctx, storageID)
		}(i, a.StorageID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
