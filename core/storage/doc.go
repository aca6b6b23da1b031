// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide the small read-only surface the sync
// service needs: the scraping collaborator drops normalized snapshot files into a
// bucket and the snapshot source lists and downloads them. Both AWS S3 and
// self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "ge-exports")
package storage
