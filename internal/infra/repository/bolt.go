package repository

import (
	"errors"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const auditBucket = "audit_logs"

var boltBuckets = []string{
	changefeed.Bookings,
	changefeed.Salons,
	changefeed.SalonConnections,
	changefeed.QRSessions,
	auditBucket,
}

// OpenBolt opens (or creates) the embedded store with every collection
// bucket in place.
func OpenBolt(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, classifyBolt(err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range boltBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, classifyBolt(err)
	}

	return db, nil
}

func classifyBolt(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bolt.ErrTimeout),
		errors.Is(err, bolt.ErrDatabaseNotOpen):
		return storeerr.Wrap(storeerr.CategoryUnavailable, err)
	case errors.Is(err, bolt.ErrDatabaseReadOnly),
		errors.Is(err, os.ErrPermission):
		return storeerr.Wrap(storeerr.CategoryPermissionDenied, err)
	}
	return err
}

var (
	errBoltNotFound = errors.New("bolt: key not found")
	errBoltExists   = errors.New("bolt: key exists")
)

func boltPut[T any](tx *bolt.Tx, bucket, key string, v *T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Bucket([]byte(bucket)).Put([]byte(key), b)
}

// boltInsert stores v under a key that must not exist yet.
func boltInsert[T any](tx *bolt.Tx, bucket, key string, v *T) error {
	if tx.Bucket([]byte(bucket)).Get([]byte(key)) != nil {
		return storeerr.Wrap(storeerr.CategoryAlreadyExists, errBoltExists)
	}
	return boltPut(tx, bucket, key, v)
}

func boltGet[T any](tx *bolt.Tx, bucket, key string) (*T, error) {
	raw := tx.Bucket([]byte(bucket)).Get([]byte(key))
	if raw == nil {
		return nil, storeerr.Wrap(storeerr.CategoryNotFound, errBoltNotFound)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// boltScan decodes every value in bucket and keeps those match accepts.
func boltScan[T any](tx *bolt.Tx, bucket string, match func(*T) bool) ([]T, error) {
	var out []T
	err := tx.Bucket([]byte(bucket)).ForEach(func(_, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if match == nil || match(&v) {
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

// boltModify loads key, applies fn and stores the result in one
// transaction.
func boltModify[T any](db *bolt.DB, bucket, key string, fn func(*T)) error {
	err := db.Update(func(tx *bolt.Tx) error {
		v, err := boltGet[T](tx, bucket, key)
		if err != nil {
			return err
		}
		fn(v)
		return boltPut(tx, bucket, key, v)
	})
	return classifyBolt(err)
}
