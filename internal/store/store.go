// Package store implements the record-store contract: a named collection of
// flat records is loaded whole and written back whole.
//
// A missing or empty store reads as an empty collection. Content that does
// not decode also reads as an empty collection; the failure is reported as a
// warning and never returned as an error.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/sirupsen/logrus"
)

// ErrMalformed wraps decode failures passed to a WarnFunc.
var ErrMalformed = errors.New("malformed store content")

// Backend is an opaque blob store keyed by store name. Read returns nil
// data and a nil error for a store that does not exist.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// WarnFunc receives non-fatal problems found while loading a store.
type WarnFunc func(name string, err error)

type settings struct {
	log         logrus.FieldLogger
	onMalformed WarnFunc
}

type Option func(*settings)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// WithWarnFunc sets the hook called when stored content cannot be decoded.
func WithWarnFunc(fn WarnFunc) Option {
	return func(s *settings) {
		s.onMalformed = fn
	}
}

// Collection reads and writes one named store as a list of T.
type Collection[T any] struct {
	backend Backend
	name    string
	settings
}

func NewCollection[T any](backend Backend, name string, opts ...Option) *Collection[T] {
	c := &Collection[T]{backend: backend, name: name}
	for _, opt := range opts {
		opt(&c.settings)
	}
	if c.log == nil {
		c.log = logger.Discard()
	}
	return c
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns every record of the store in stored order.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.backend.Read(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", c.name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrMalformed, c.name, err)
		c.log.WithError(err).WithField("store", c.name).Warn("could not decode store, treating it as empty")
		if c.onMalformed != nil {
			c.onMalformed(c.name, err)
		}
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save replaces the whole store with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode store %s: %w", c.name, err)
	}
	if err := c.backend.Write(ctx, c.name, data); err != nil {
		return fmt.Errorf("write store %s: %w", c.name, err)
	}
	c.log.WithFields(logrus.Fields{"store": c.name, "records": len(records)}).Debug("store written")
	return nil
}
