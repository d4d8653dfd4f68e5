package kvdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meghashyamc/lexisearch/config"
	"github.com/meghashyamc/lexisearch/logger"
	bolt "go.etcd.io/bbolt"
)

const openTimeout = time.Second

type BoltDB struct {
	store  *bolt.DB
	logger logger.Logger
}

// New opens (or creates) the bbolt file at the configured path along with
// its parent directories and every bucket the cache writes to.
func New(logger logger.Logger, cfg *config.Config) (*BoltDB, error) {
	path := cfg.GetKVDBPath()
	if path == "" {
		logger.Error("lookup cache path is not configured")
		return nil, errors.New("lookup cache path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("could not create lookup cache directory", "path", path, "err", err.Error())
		return nil, fmt.Errorf("could not create lookup cache directory: %w", err)
	}

	store, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		logger.Error("could not open lookup cache", "path", path, "err", err.Error())
		return nil, fmt.Errorf("could not open lookup cache: %w", err)
	}

	err = store.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return &OpError{Op: "create", Bucket: name, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		_ = store.Close()
		logger.Error("could not create lookup cache buckets", "err", err.Error())
		return nil, err
	}

	return &BoltDB{store: store, logger: logger}, nil
}

func (b *BoltDB) Put(bucketName string, key string, value []byte) error {
	err := b.update(bucketName, key, "put", func(bucket *bolt.Bucket) error {
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		b.logger.Error("could not write key", "err", err.Error())
	}
	return err
}

// Get returns a copy of the stored value, or an error wrapping ErrNotFound.
func (b *BoltDB) Get(bucketName string, key string) ([]byte, error) {
	if key == "" {
		return nil, &OpError{Op: "get", Bucket: bucketName, Err: ErrEmptyKey}
	}

	var value []byte
	err := b.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return &OpError{Op: "get", Bucket: bucketName, Key: key, Err: ErrUnknownBucket}
		}
		stored := bucket.Get([]byte(key))
		if stored == nil {
			return &OpError{Op: "get", Bucket: bucketName, Key: key, Err: ErrNotFound}
		}
		// stored is only valid inside the transaction
		value = append([]byte(nil), stored...)
		return nil
	})

	return value, err
}

// Delete removes key. Deleting a missing key is not an error.
func (b *BoltDB) Delete(bucketName string, key string) error {
	err := b.update(bucketName, key, "delete", func(bucket *bolt.Bucket) error {
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		b.logger.Error("could not delete key", "err", err.Error())
	}
	return err
}

func (b *BoltDB) update(bucketName string, key string, op string, fn func(*bolt.Bucket) error) error {
	if key == "" {
		return &OpError{Op: op, Bucket: bucketName, Err: ErrEmptyKey}
	}

	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return &OpError{Op: op, Bucket: bucketName, Key: key, Err: ErrUnknownBucket}
		}
		if err := fn(bucket); err != nil {
			return &OpError{Op: op, Bucket: bucketName, Key: key, Err: err}
		}
		return nil
	})
}

func (b *BoltDB) Close() error {
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}
