package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/mongosettings/codec"
	"github.com/unkn0wn-root/mongosettings/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// getter is the part of goredis.UniversalClient the store reads through.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// Redis serves records from plain string keys: <Prefix><field name> holds the
// payload encoded with Codec.
type Redis struct {
	rdb         getter
	client      goredis.UniversalClient
	prefix      string
	codec       codec.Codec[any]
	closeClient bool
}

var _ store.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	Prefix      string           // e.g. "settings:app:"
	Codec       codec.Codec[any] // nil => codec.JSON[any]
	CloseClient bool             // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	c := cfg.Codec
	if c == nil {
		c = codec.JSON[any]{}
	}
	return &Redis{
		rdb:         cfg.Client,
		client:      cfg.Client,
		prefix:      cfg.Prefix,
		codec:       c,
		closeClient: cfg.CloseClient,
	}, nil
}

func (s *Redis) FetchByKey(ctx context.Context, key string) (store.Record, bool, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err == goredis.Nil {
		return store.Record{}, false, nil // miss
	}
	if err != nil {
		return store.Record{}, false, err // transport/server error
	}
	v, err := s.codec.Decode(b)
	if err != nil {
		return store.Record{}, false, fmt.Errorf("redis store: decode %q: %w", key, err)
	}
	return store.Record{Key: key, Value: v}, true, nil
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient && s.client != nil {
		if err := s.client.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
