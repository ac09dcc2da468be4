package db

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"clinic/kit/broker"
)

var ErrJournalClosed = errors.New("journal closed")

// Record is one journaled event.
type Record struct {
	AggregateID string          `json:"aggregate_id"`
	EventName   string          `json:"event_name"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// Journal is an append-only event log kept in memory and, optionally, mirrored
// to a jsonl file that is replayed on open.
type Journal struct {
	mu      sync.RWMutex
	streams map[string][]Record
	log     []Record

	fileMu sync.Mutex
	f      *os.File
	path   string
	now    func() time.Time
}

func NewJournal() *Journal {
	return &Journal{streams: make(map[string][]Record), now: time.Now}
}

func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("layer=store component=journal method=OpenJournal path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		log.Printf("layer=store component=journal method=OpenJournal path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}

	j := NewJournal()
	if err := j.replay(f); err != nil {
		_ = f.Close()
		log.Printf("layer=store component=journal method=OpenJournal path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		_ = f.Close()
		log.Printf("layer=store component=journal method=OpenJournal path=%s err=%v", path, err)
		return nil, errors.Join(ErrInternal, err)
	}
	j.f = f
	j.path = path
	return j, nil
}

func (j *Journal) replay(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		j.streams[rec.AggregateID] = append(j.streams[rec.AggregateID], rec)
		j.log = append(j.log, rec)
	}
	return scanner.Err()
}

func (j *Journal) Close() error {
	j.fileMu.Lock()
	defer j.fileMu.Unlock()
	if j.f == nil {
		return nil
	}
	err := j.f.Close()
	if err != nil {
		log.Printf("layer=store component=journal method=Close err=%v", err)
	}
	j.f = nil
	return err
}

// Ping fails when a file backed journal has been closed or its file can no
// longer be stat'ed. An in-memory journal is always healthy.
func (j *Journal) Ping(ctx context.Context) error {
	j.fileMu.Lock()
	defer j.fileMu.Unlock()
	if j.path == "" {
		return ctx.Err()
	}
	if j.f == nil {
		return errors.Join(ErrInternal, ErrJournalClosed)
	}
	if _, err := j.f.Stat(); err != nil {
		log.Printf("layer=store component=journal method=Ping path=%s err=%v", j.path, err)
		return errors.Join(ErrInternal, err)
	}
	return ctx.Err()
}

func (j *Journal) Append(ctx context.Context, aggregateID string, evt broker.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("layer=store component=journal method=Append aggregate_id=%s event=%s err=%v", aggregateID, evt.Name(), err)
		return errors.Join(ErrInternal, err)
	}
	rec := Record{
		AggregateID: aggregateID,
		EventName:   evt.Name(),
		Payload:     payload,
		OccurredAt:  j.now().UTC(),
	}

	j.fileMu.Lock()
	defer j.fileMu.Unlock()
	if j.f != nil {
		b, err := json.Marshal(rec)
		if err != nil {
			log.Printf("layer=store component=journal method=Append aggregate_id=%s event=%s err=%v", aggregateID, evt.Name(), err)
			return errors.Join(ErrInternal, err)
		}
		if _, err := j.f.Write(append(b, '\n')); err != nil {
			log.Printf("layer=store component=journal method=Append aggregate_id=%s event=%s err=%v", aggregateID, evt.Name(), err)
			return errors.Join(ErrInternal, err)
		}
	}

	j.mu.Lock()
	j.streams[aggregateID] = append(j.streams[aggregateID], rec)
	j.log = append(j.log, rec)
	j.mu.Unlock()
	return nil
}

func (j *Journal) Load(ctx context.Context, aggregateID string) []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]Record(nil), j.streams[aggregateID]...)
}

func (j *Journal) All(ctx context.Context) []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]Record(nil), j.log...)
}
