package mongosettings

import (
	"context"
	"fmt"
	"time"

	"github.com/unkn0wn-root/mongosettings/cache"
	"github.com/unkn0wn-root/mongosettings/cache/ttl"
	"github.com/unkn0wn-root/mongosettings/store"
	mongostore "github.com/unkn0wn-root/mongosettings/store/mongo"
)

const (
	DefaultMaxEntries   = 64
	DefaultTTL          = 120 * time.Second
	DefaultFetchTimeout = 30 * time.Second
)

// DialFunc opens the remote store described by a Connector.
type DialFunc func(ctx context.Context, c Connector) (store.Store, error)

// Options tune a settings instance. The zero value is usable: a 64 entry,
// 120s ttl cache in front of MongoDB.
type Options struct {
	MaxEntries int           // 0 => 64, < 0 => unbounded; ignored when Cache is set
	TTL        time.Duration // 0 => 120s; ignored when Cache is set
	Cache      cache.Cache   // nil => cache/ttl. Closed by Base.Close.
	Dial       DialFunc      // nil => DialMongo
	Logger     Logger        // nil => NopLogger
	Hooks      Hooks         // nil => NopHooks

	// FetchTimeout bounds one store fetch: 0 => 30s, < 0 => unbounded. A fetch
	// is shared by concurrent readers, so it ignores their cancellation and
	// deadlines; a reader whose ctx ends stops waiting and gets ctx.Err().
	FetchTimeout time.Duration
}

// DialMongo is the default DialFunc.
func DialMongo(ctx context.Context, c Connector) (store.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return mongostore.New(ctx, c.storeConfig())
}

// settings is satisfied by any struct pointer embedding Base.
type settings interface {
	settingsBase() *Base
}

// Init wires a settings instance: it checks the connector, binds every
// Remote field, opens the store and creates a fresh cache owned by s.
// A missing connector fails with ErrMissingConnector before any dial.
func Init(ctx context.Context, s settings, opts Options) error {
	b := s.settingsBase()
	if b == nil {
		return fmt.Errorf("mongosettings: %T embeds a nil *Base", s)
	}
	if b.r != nil {
		return ErrAlreadyInitialized
	}

	var conn *Connector
	if cp, ok := s.(ConnectorProvider); ok {
		conn = cp.MongoConnector()
	}
	if conn == nil {
		return fmt.Errorf("%w: %T", ErrMissingConnector, s)
	}

	attrs, err := bindFields(s, b)
	if err != nil {
		return err
	}

	log := coalesce[Logger](opts.Logger, NopLogger{})
	c := opts.Cache
	if c == nil {
		maxEntries := coalesce(opts.MaxEntries, DefaultMaxEntries)
		if maxEntries < 0 {
			maxEntries = 0 // unbounded
		}
		c, err = ttl.New(ttl.Config{
			MaxEntries: uint64(maxEntries),
			TTL:        coalesce(opts.TTL, DefaultTTL),
		})
		if err != nil {
			return err
		}
	}

	dial := opts.Dial
	if dial == nil {
		dial = DialMongo
	}
	st, err := dial(ctx, *conn)
	if err != nil {
		_ = c.Close(ctx)
		return fmt.Errorf("mongosettings: connect %s/%s: %w", conn.Database, conn.Collection, err)
	}

	b.attrs = attrs
	b.r = &resolver{
		store: st,
		cache: c,
		log:   log,
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),

		fetchTimeout: coalesce(opts.FetchTimeout, DefaultFetchTimeout),
	}
	log.Debug("settings initialized", Fields{
		"type":       fmt.Sprintf("%T", s),
		"fields":     len(attrs),
		"db":         conn.Database,
		"collection": conn.Collection,
	})
	return nil
}
