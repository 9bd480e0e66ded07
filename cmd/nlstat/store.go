package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hupe1980/neighborhood/blobstore"
	"github.com/hupe1980/neighborhood/blobstore/minio"
	"github.com/hupe1980/neighborhood/blobstore/s3"
)

// openStore resolves a snapshot location to a store and the blob name in it.
// Locations are s3://bucket/key, minio://bucket/key or a local path.
func (c Config) openStore(ctx context.Context, location string) (blobstore.Store, string, error) {
	scheme, rest, remote := strings.Cut(location, "://")
	if !remote {
		return blobstore.NewLocalStore(filepath.Dir(location)), filepath.Base(location), nil
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, "", fmt.Errorf("location %q: want %s://bucket/key", location, scheme)
	}

	switch scheme {
	case "s3":
		var opts []s3.Option
		if c.AWSRegion != "" {
			opts = append(opts, s3.WithRegion(c.AWSRegion))
		}
		store, err := s3.New(ctx, bucket, opts...)
		if err != nil {
			return nil, "", err
		}
		return store, key, nil
	case "minio":
		store, err := minio.Open(ctx, minio.Config{
			Endpoint:  c.MinioEndpoint,
			AccessKey: c.MinioAccessKey,
			SecretKey: c.MinioSecretKey,
			Secure:    c.MinioSecure,
			Bucket:    bucket,
		})
		if err != nil {
			return nil, "", err
		}
		return store, key, nil
	default:
		return nil, "", fmt.Errorf("location %q: unknown scheme %q", location, scheme)
	}
}
