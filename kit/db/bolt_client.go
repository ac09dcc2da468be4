package db

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "github.com/boltdb/bolt"
)

// BoltClient runs the query set against a single bolt file. Every table is a
// bucket and every row a JSON document keyed by its primary key.
type BoltClient struct {
	db *bolt.DB
}

type boltTxKey struct{ c *BoltClient }

func OpenBolt(path string) (*BoltClient, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("layer=client component=db method=OpenBolt path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Printf("layer=client component=db method=OpenBolt path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}
	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range allTables {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		log.Printf("layer=client component=db method=OpenBolt path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}
	return &BoltClient{db: bdb}, nil
}

func (c *BoltClient) Close() error {
	return c.db.Close()
}

func (c *BoltClient) Exec(ctx context.Context, query string, args ...any) error {
	if tx := c.txFrom(ctx); tx != nil {
		return execQuery(boltTables{tx: tx}, query, args)
	}
	err := c.db.Update(func(tx *bolt.Tx) error {
		return execQuery(boltTables{tx: tx}, query, args)
	})
	return boltErr(err)
}

func (c *BoltClient) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	if tx := c.txFrom(ctx); tx != nil {
		return queryRow(boltTables{tx: tx}, query, args), nil
	}
	var r *row
	err := c.db.View(func(tx *bolt.Tx) error {
		r = queryRow(boltTables{tx: tx}, query, args)
		return nil
	})
	if err != nil {
		log.Printf("layer=client component=db method=QueryRow err=%v", err)
		return nil, boltErr(err)
	}
	return r, nil
}

// WithinTx runs fn inside one read-write bolt transaction. Bolt allows a
// single writer at a time, so concurrent transactions are serialized.
func (c *BoltClient) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.txFrom(ctx) != nil {
		return fn(ctx)
	}
	err := c.db.Update(func(tx *bolt.Tx) error {
		return fn(context.WithValue(ctx, boltTxKey{c}, tx))
	})
	return boltErr(err)
}

func (c *BoltClient) txFrom(ctx context.Context) *bolt.Tx {
	tx, _ := ctx.Value(boltTxKey{c}).(*bolt.Tx)
	return tx
}

func boltErr(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return errors.Join(ErrClosed, err)
	}
	return err
}

type boltTables struct {
	tx *bolt.Tx
}

func (b boltTables) get(table, key string) []byte {
	bk := b.tx.Bucket([]byte(table))
	if bk == nil {
		return nil
	}
	v := bk.Get([]byte(key))
	if v == nil {
		return nil
	}
	// bolt memory is only valid for the life of the transaction.
	return append([]byte(nil), v...)
}

func (b boltTables) put(table, key string, v []byte) error {
	bk := b.tx.Bucket([]byte(table))
	if bk == nil {
		return errors.Join(ErrInternal, errors.New("missing bucket "+table))
	}
	return bk.Put([]byte(key), v)
}

func (b boltTables) forEach(table string, fn func(k, v []byte) error) error {
	bk := b.tx.Bucket([]byte(table))
	if bk == nil {
		return nil
	}
	return bk.ForEach(fn)
}
