package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-sync/internal/config"
)

func TestPublicBase(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com",
		publicBase(config.S3Config{Bucket: "qr", PublicBaseURL: "https://cdn.example.com"}),
	)
	assert.Equal(t,
		"http://minio:9000/qr",
		publicBase(config.S3Config{Bucket: "qr", Endpoint: "http://minio:9000/"}),
	)
	assert.Equal(t,
		"https://qr.s3.sa-east-1.amazonaws.com",
		publicBase(config.S3Config{Bucket: "qr", Region: "sa-east-1"}),
	)
}
