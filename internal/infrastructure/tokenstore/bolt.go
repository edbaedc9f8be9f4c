package tokenstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vastriantafyllou/goal-tracker/session"
)

const defaultBucket = "session"

type record struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Bolt persists the token in a local BoltDB file, keyed by cookie name.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
	now    func() time.Time
}

// OpenBolt opens (or creates) the BoltDB file and ensures the bucket exists.
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(defaultBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{
		db:     db,
		bucket: []byte(defaultBucket),
		now:    time.Now,
	}, nil
}

// Load returns the stored token. An expired record is removed and reported
// as no token.
func (s *Bolt) Load(_ context.Context, policy session.Cookie) (string, error) {
	if s == nil || s.db == nil {
		return "", bolt.ErrDatabaseNotOpen
	}

	var rec record
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(policy.Name))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	if err != nil || !found {
		return "", err
	}

	if !rec.ExpiresAt.IsZero() && !rec.ExpiresAt.After(s.now()) {
		return "", s.remove(policy.Name)
	}
	return rec.Token, nil
}

func (s *Bolt) Save(_ context.Context, token string, policy session.Cookie) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	rec := record{Token: token}
	if policy.MaxAge > 0 {
		rec.ExpiresAt = s.now().Add(policy.MaxAge)
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(policy.Name), payload)
	})
}

func (s *Bolt) Delete(_ context.Context, policy session.Cookie) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.remove(policy.Name)
}

// Close closes the Bolt database.
func (s *Bolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Bolt) remove(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}
