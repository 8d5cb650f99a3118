package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/osutil"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
)

const (
	bundleBucket = "bundles"
	userBucket   = "users"
	metaBucket   = "meta"
)

// BoltStore keeps one JSON document per user in a BoltDB file.
type BoltStore struct {
	db *bolt.DB
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	if err := os.MkdirAll(filepath.Dir(pathToDB), osutil.DirPermission); err != nil {
		return nil, errOpenDB.Wrap(err)
	}

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, errDalRunning
		}

		return nil, errOpenDB.Wrap(err)
	}

	return db, nil
}

// NewBoltStore opens the BoltDB file at dbPath, creating the buckets and
// running pending migrations.
func NewBoltStore(dbPath string) (*BoltStore, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bundleBucket, userBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, errOpenDB.Wrap(err)
	}

	return &BoltStore{db}, nil
}

func (s *BoltStore) Load(
	ctx context.Context,
	userID string,
) (models.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return models.Bundle{}, err
	}

	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bundleBucket)).Get([]byte(userID))
		if len(v) == 0 {
			// this will initialise a new bundle
			return nil
		}

		data = make([]byte, len(v))
		copy(data, v)

		return nil
	})
	if err != nil {
		return models.Bundle{}, errLoad.Fmt(userID).Wrap(err)
	}

	b, report, decodeErr := models.DecodeBundle(data)
	logDecodeReport(userID, report, decodeErr)

	return b, nil
}

func (s *BoltStore) Save(
	ctx context.Context,
	userID string,
	b models.Bundle,
) error {
	if strings.TrimSpace(userID) == "" {
		return errEmptyUser
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	b.Normalize()

	value, err := json.Marshal(b)
	if err != nil {
		return errSave.Fmt(userID).Wrap(err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		key := []byte(userID)

		if err := tx.Bucket([]byte(bundleBucket)).Put(key, value); err != nil {
			return err
		}

		stamp := []byte(time.Now().Format(time.RFC3339))

		return tx.Bucket([]byte(userBucket)).Put(key, stamp)
	})
	if err != nil {
		return errSave.Fmt(userID).Wrap(err)
	}

	return nil
}

func (s *BoltStore) ListUsers(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var users []string

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(userBucket)).ForEach(func(k, _ []byte) error {
			users = append(users, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	tagging.SortNatural(users)

	return users, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
