package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrylevesque/tododemo/internal/models"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "state"
	// StateKey is the key the cart lines are stored under.
	StateKey = "cart"
)

// Persister saves and restores cart lines.
type Persister interface {
	Load() ([]models.CartItem, error)
	Save(items []models.CartItem) error
}

// BoltPersister keeps the cart as one JSON value in a bbolt file.
type BoltPersister struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the database at path.
func OpenBolt(path string) (*BoltPersister, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create cart dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cart bucket: %w", err)
	}
	return &BoltPersister{db: db}, nil
}

func (p *BoltPersister) Load() ([]models.CartItem, error) {
	var items []models.CartItem
	err := p.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(StateKey))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &items)
	})
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return items, nil
}

func (p *BoltPersister) Save(items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(StateKey), data)
	})
}

func (p *BoltPersister) Close() error {
	return p.db.Close()
}

// Restore builds a cart from p and saves it back on every change. Save
// failures are logged, not returned: the in-memory cart stays valid.
func Restore(p Persister, logger zerolog.Logger) (*Cart, error) {
	items, err := p.Load()
	if err != nil {
		return nil, err
	}
	c := New(items)
	c.Subscribe(func(items []models.CartItem) {
		if err := p.Save(items); err != nil {
			logger.Error().Err(err).Msg("cart not persisted")
		}
	})
	return c, nil
}
