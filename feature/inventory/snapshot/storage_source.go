package snapshot

import (
	"context"
	"fmt"
	"strings"

	"ge-sync/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// StorageSource reads snapshots from object storage. The scraper writes either
// <prefix>/<company>/<location>/<unit>.json or timestamped exports under
// <prefix>/<company>/<location>/<unit>/; the most recently modified object wins.
type StorageSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageSource creates a snapshot source backed by the storage client.
func NewStorageSource(client storage.Client, bucket, prefix string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *StorageSource) base(scope Scope) string {
	parts := []string{scope.CompanyID, scope.LocationID, scope.Unit}
	if s.prefix != "" {
		parts = append([]string{s.prefix}, parts...)
	}
	return strings.Join(parts, "/")
}

// Fetch downloads and decodes the newest snapshot for scope.
func (s *StorageSource) Fetch(ctx context.Context, scope Scope) (*Raw, error) {
	latest, err := s.Latest(ctx, scope)
	if err != nil {
		return nil, &FetchError{Scope: scope, Err: err}
	}
	key := latest.Key

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &FetchError{Scope: scope, Err: fmt.Errorf("failed to get %s: %w", key, err)}
	}
	defer obj.Close()

	var raw Raw
	if err := json.NewDecoder(obj).Decode(&raw); err != nil {
		return nil, &FetchError{Scope: scope, Err: fmt.Errorf("failed to decode %s: %w", key, err)}
	}

	return &raw, nil
}

// Latest returns the newest snapshot object for scope without downloading it.
func (s *StorageSource) Latest(ctx context.Context, scope Scope) (minio.ObjectInfo, error) {
	base := s.base(scope)

	var (
		best    minio.ObjectInfo
		found   bool
		listErr error
	)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: base, Recursive: true}) {
		if obj.Err != nil {
			listErr = obj.Err
			continue
		}
		if obj.Key != base+".json" && !(strings.HasPrefix(obj.Key, base+"/") && strings.HasSuffix(obj.Key, ".json")) {
			continue
		}
		if !found || obj.LastModified.After(best.LastModified) {
			best = obj
			found = true
		}
	}

	if !found {
		if listErr != nil {
			return minio.ObjectInfo{}, fmt.Errorf("failed to list %s: %w", base, listErr)
		}
		return minio.ObjectInfo{}, fmt.Errorf("%w under %s", ErrNoSnapshot, base)
	}
	return best, nil
}
