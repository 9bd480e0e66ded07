// Package minio provides a blobstore.Store backed by MinIO or any other
// S3-compatible object storage (Ceph, SeaweedFS, Garage).
//
// # Basic Usage
//
//	store, err := minio.Open(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "snapshots",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = nb.SaveTo(ctx, store, "fcc.nbh")
//
// NewStore wraps an existing *minio.Client instead.
package minio
