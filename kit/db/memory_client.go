package db

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// MemoryClient keeps every table in process memory and can mirror the whole
// dataset to a JSON file after each committed write.
type MemoryClient struct {
	// txMu serializes transactions and standalone statements.
	txMu sync.Mutex
	mu   sync.Mutex

	data map[string]map[string]json.RawMessage

	persistPath string
}

type MemoryOption func(*MemoryClient) error

type memTxKey struct{ c *MemoryClient }

func NewMemoryClient(opts ...MemoryOption) (*MemoryClient, error) {
	c := &MemoryClient{data: emptyData()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func emptyData() map[string]map[string]json.RawMessage {
	d := make(map[string]map[string]json.RawMessage, len(allTables))
	for _, t := range allTables {
		d[t] = make(map[string]json.RawMessage)
	}
	return d
}

func WithJSONFile(path string) MemoryOption {
	return func(c *MemoryClient) error {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return errors.Join(ErrInternal, err)
		}
		if len(b) == 0 {
			return nil
		}
		var m map[string]map[string]json.RawMessage
		if err := json.Unmarshal(b, &m); err != nil {
			return errors.Join(ErrInternal, err)
		}
		for t, rows := range m {
			c.data[t] = rows
		}
		return nil
	}
}

func WithJSONPersistence(path string) MemoryOption {
	return func(c *MemoryClient) error {
		c.persistPath = path
		return nil
	}
}

func (c *MemoryClient) Exec(ctx context.Context, query string, args ...any) error {
	joined := c.inTx(ctx)
	if !joined {
		c.txMu.Lock()
		defer c.txMu.Unlock()
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := execQuery(memTables(c.data), query, args); err != nil {
		return err
	}
	if joined {
		return nil
	}
	return c.persistLocked()
}

func (c *MemoryClient) QueryRow(ctx context.Context, query string, args ...any) (Row, error) {
	if !c.inTx(ctx) {
		c.txMu.Lock()
		defer c.txMu.Unlock()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return queryRow(memTables(c.data), query, args), nil
}

// WithinTx snapshots the dataset, runs fn and restores the snapshot when fn
// fails or panics. Nested calls join the outer transaction.
func (c *MemoryClient) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.inTx(ctx) {
		return fn(ctx)
	}
	c.txMu.Lock()
	defer c.txMu.Unlock()

	c.mu.Lock()
	snapshot := cloneData(c.data)
	c.mu.Unlock()

	committed := false
	defer func() {
		if committed {
			return
		}
		c.mu.Lock()
		c.data = snapshot
		c.mu.Unlock()
	}()

	if err := fn(context.WithValue(ctx, memTxKey{c}, c)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.persistLocked(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (c *MemoryClient) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(memTxKey{c}).(*MemoryClient)
	return v == c
}

func cloneData(src map[string]map[string]json.RawMessage) map[string]map[string]json.RawMessage {
	dst := make(map[string]map[string]json.RawMessage, len(src))
	for t, rows := range src {
		cp := make(map[string]json.RawMessage, len(rows))
		for k, v := range rows {
			cp[k] = v
		}
		dst[t] = cp
	}
	return dst
}

func (c *MemoryClient) persistLocked() error {
	if c.persistPath == "" {
		return nil
	}
	dir := filepath.Dir(c.persistPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("layer=client component=db method=persistLocked path=%s err=%v", c.persistPath, err)
		return errors.Join(ErrInternal, err)
	}

	b, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		log.Printf("layer=client component=db method=persistLocked path=%s err=%v", c.persistPath, err)
		return errors.Join(ErrInternal, err)
	}
	b = append(b, '\n')

	tmp := c.persistPath + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		log.Printf("layer=client component=db method=persistLocked path=%s err=%v", c.persistPath, err)
		return errors.Join(ErrInternal, err)
	}
	if err := os.Rename(tmp, c.persistPath); err != nil {
		log.Printf("layer=client component=db method=persistLocked path=%s err=%v", c.persistPath, err)
		return errors.Join(ErrInternal, err)
	}
	return nil
}

type memTables map[string]map[string]json.RawMessage

func (m memTables) get(table, key string) []byte {
	v, ok := m[table][key]
	if !ok {
		return nil
	}
	return v
}

func (m memTables) put(table, key string, v []byte) error {
	rows, ok := m[table]
	if !ok {
		rows = make(map[string]json.RawMessage)
		m[table] = rows
	}
	rows[key] = append(json.RawMessage(nil), v...)
	return nil
}

func (m memTables) forEach(table string, fn func(k, v []byte) error) error {
	for k, v := range m[table] {
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}
