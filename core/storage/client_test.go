package storage_test

import (
	"testing"

	"asset-sync/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "asset-sync",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:9000", "https://s3.amazonaws.com"} {
			client, err := storage.NewClient(storage.Config{
				Endpoint: endpoint,
				Bucket:   "asset-sync",
				UseSSL:   endpoint[:5] == "https",
			})
			assert.NoError(t, err, endpoint)
			assert.NotNil(t, client)
		}
	})

	t.Run("MissingBucket", func(t *testing.T) {
		_, err := storage.NewClient(storage.Config{Endpoint: "localhost:9000"})
		assert.Error(t, err)
	})
}
