package store

import (
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	schemaKey     = "schema"
	schemaVersion = 1
)

// migrateRegistry registers every user that already has a bundle. Files
// written before the users bucket existed have no registry entries.
func migrateRegistry(tx *bolt.Tx) error {
	users := tx.Bucket([]byte(userBucket))
	cur := tx.Bucket([]byte(bundleBucket)).Cursor()

	stamp := []byte(time.Now().Format(time.RFC3339))

	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		if users.Get(k) != nil {
			continue
		}

		if err := users.Put(k, stamp); err != nil {
			return err
		}
	}

	return nil
}

func migrate(tx *bolt.Tx) error {
	meta := tx.Bucket([]byte(metaBucket))

	current, _ := strconv.Atoi(string(meta.Get([]byte(schemaKey))))
	if current >= schemaVersion {
		return nil
	}

	if err := migrateRegistry(tx); err != nil {
		return err
	}

	return meta.Put(
		[]byte(schemaKey),
		[]byte(strconv.Itoa(schemaVersion)),
	)
}
