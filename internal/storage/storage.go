// Package storage persists advert images in an S3-compatible object store.
package storage

import "context"

// StoredImage identifies an uploaded image in the external store.
type StoredImage struct {
	// URL is the externally reachable address of the object.
	URL string
	// ID is the storage key, kept so the object can be deleted later.
	ID string
}

// ImageStore uploads advert images to an external delegate.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType, ext string) (*StoredImage, error)
	Delete(ctx context.Context, id string) error
}
