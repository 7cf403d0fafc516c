package config

import (
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("FEED_DRIVER", "")
	t.Setenv("QR_SIZE", "")

	cfg := Load()

	assert.Equal(t, StoreBolt, cfg.StoreDriver)
	assert.Equal(t, FeedMemory, cfg.FeedDriver)
	assert.Equal(t, "@every 1m", cfg.CleanupSchedule)
	assert.Equal(t, 256, cfg.QRSize)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "postgres store and feed",
			cfg:  Config{StoreDriver: StorePostgres, DBUrl: "postgres://x", FeedDriver: FeedPostgres, QRSize: 256},
		},
		{
			name: "bolt with memory feed",
			cfg:  Config{StoreDriver: StoreBolt, BoltPath: "x.db", FeedDriver: FeedMemory, QRSize: 256},
		},
		{
			name:    "bolt cannot use postgres feed",
			cfg:     Config{StoreDriver: StoreBolt, BoltPath: "x.db", FeedDriver: FeedPostgres, QRSize: 256},
			wantErr: true,
		},
		{
			name:    "redis feed needs url",
			cfg:     Config{StoreDriver: StoreBolt, BoltPath: "x.db", FeedDriver: FeedRedis, QRSize: 256},
			wantErr: true,
		},
		{
			name:    "unknown store",
			cfg:     Config{StoreDriver: "mongo", FeedDriver: FeedMemory, QRSize: 256},
			wantErr: true,
		},
		{
			name:    "tiny qr",
			cfg:     Config{StoreDriver: StoreBolt, BoltPath: "x.db", FeedDriver: FeedMemory, QRSize: 10},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateKeepsURLParseCause(t *testing.T) {
	cfg := Config{
		StoreDriver: StorePostgres,
		DBUrl:       "postgres://user:%zz@db/salonsync",
		FeedDriver:  FeedPostgres,
		QRSize:      256,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DATABASE_URL")

	var urlErr *url.Error
	assert.ErrorAs(t, errors.Cause(err), &urlErr)

	cfg.DBUrl = "postgres://db/salonsync"
	cfg.S3.Endpoint = "minio.local"
	assert.ErrorContains(t, cfg.Validate(), "S3_ENDPOINT")

	cfg.S3.Endpoint = "http://minio:9000"
	assert.NoError(t, cfg.Validate())

	cfg.DBUrl = "host=db user=salonsync dbname=salonsync"
	assert.NoError(t, cfg.Validate())
}

func TestParamsMaskSecrets(t *testing.T) {
	cfg := &Config{
		DBUrl:     "postgres://user:pw@db/salonsync",
		JWTSecret: "abc",
		S3:        S3Config{Region: "us-east-1"},
	}

	byName := map[string]Param{}
	for _, p := range cfg.Params() {
		byName[p.Name] = p
	}

	assert.Equal(t, "post****", byName["DATABASE_URL"].Value)
	assert.Equal(t, "****", byName["JWT_SECRET"].Value)
	assert.Equal(t, "us-east-1", byName["S3_REGION"].Value)
	assert.False(t, byName["REDIS_URL"].Present)
	assert.Equal(t, "MISSING", byName["BOT_API_KEY"].Value)
}
