// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = nb.SaveTo(ctx, store, "fcc.nbh")
//
// Small blobs are written with a single PutObject call carrying a CRC32C
// checksum; blobs of at least UploadConfig.PartSize bytes use multipart
// uploads.
package s3
