package s3client

import (
	"github.com/minio/minio-go/v7"
)

// Client is set once by the s3 initializer and shared by storage handlers.
var Client *minio.Client
