// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"bytes"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/ik5/pdspec/imaging"
)

// ComputeFunc renders an image on a cache miss.
type ComputeFunc func() (*imaging.Image, error)

// Cache returns the image stored under key, or computes and stores it.
type Cache interface {
	GetOrCompute(key string, compute ComputeFunc) (*imaging.Image, error)
}

// NopCache always computes.
type NopCache struct{}

func (NopCache) GetOrCompute(_ string, compute ComputeFunc) (*imaging.Image, error) {
	return compute()
}

// FileCache treats the key as a PNG path. An existing readable file is a
// hit; anything else is recomputed and written there.
type FileCache struct{}

func (FileCache) GetOrCompute(key string, compute ComputeFunc) (*imaging.Image, error) {
	img, err := imaging.ReadPNG(key)
	if err == nil {
		return img, nil
	}

	img, err = compute()
	if err != nil {
		return nil, err
	}
	if err := imaging.WritePNG(key, img); err != nil {
		return nil, fmt.Errorf("caching %s: %w", key, err)
	}

	return img, nil
}

// BadgerCache stores PNG bytes in a badger database. It is safe for
// concurrent use.
type BadgerCache struct {
	db *badger.DB
}

// OpenBadgerCache opens or creates the database in dir. An empty dir keeps
// everything in memory.
func OpenBadgerCache(dir string, log *zap.Logger) (*BadgerCache, error) {
	if log == nil {
		log = zap.NewNop()
	}

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{log.Sugar()})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger cache: %w", err)
	}

	return &BadgerCache{db: db}, nil
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}

func (c *BadgerCache) get(key string) ([]byte, error) {
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})

	return val, err
}

func (c *BadgerCache) GetOrCompute(key string, compute ComputeFunc) (*imaging.Image, error) {
	val, err := c.get(key)
	switch {
	case err == nil:
		if img, derr := imaging.DecodePNG(bytes.NewReader(val)); derr == nil {
			return img, nil
		}
	case !errors.Is(err, badger.ErrKeyNotFound):
		return nil, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	img, err := compute()
	if err != nil {
		return nil, err
	}

	data, err := imaging.PNGBytes(img)
	if err != nil {
		return nil, err
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return nil, fmt.Errorf("writing cache entry %s: %w", key, err)
	}

	return img, nil
}

// badgerLogger routes badger output to zap, demoting info to debug.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...any)   { l.s.Errorf("badger: "+f, v...) }
func (l badgerLogger) Warningf(f string, v ...any) { l.s.Warnf("badger: "+f, v...) }
func (l badgerLogger) Infof(f string, v ...any)    { l.s.Debugf("badger: "+f, v...) }
func (l badgerLogger) Debugf(string, ...any)       {}
