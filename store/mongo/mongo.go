package mongo

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	drv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unkn0wn-root/mongosettings/store"
)

// Document layout: {"key": <field name>, "value": <raw payload>}.
const (
	KeyField   = "key"
	ValueField = "value"

	DefaultPort = 27017
)

var (
	ErrNilCollection = errors.New("mongo store: nil collection")
	ErrNoNamespace   = errors.New("mongo store: database and collection are required")
)

// finder is the part of *mongo.Collection the store needs.
type finder interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *drv.SingleResult
}

type Store struct {
	coll   finder
	client *drv.Client // set only when the store owns the client
}

var _ store.Store = (*Store)(nil)

type Config struct {
	Host       string
	Port       int // 0 => 27017
	Username   string
	Password   string
	Database   string
	Collection string

	AppName                string
	ConnectTimeout         time.Duration // 0 => driver default
	ServerSelectionTimeout time.Duration // 0 => driver default
}

// New builds a client for cfg and returns a store that owns it. The driver
// connects lazily; an unreachable server surfaces on the first FetchByKey.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, ErrNoNamespace
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	opts := options.Client().SetHosts([]string{net.JoinHostPort(cfg.Host, strconv.Itoa(port))})
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{Username: cfg.Username, Password: cfg.Password})
	}
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	client, err := drv.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Store{
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		client: client,
	}, nil
}

// NewWithCollection wraps an existing collection. Close does not disconnect its client.
func NewWithCollection(coll *drv.Collection) (*Store, error) {
	if coll == nil {
		return nil, ErrNilCollection
	}
	return &Store{coll: coll}, nil
}

// FetchByKey finds the document whose key field equals key. A document without
// a value field is returned with a nil Value.
func (s *Store) FetchByKey(ctx context.Context, key string) (store.Record, bool, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx,
		bson.D{{Key: KeyField, Value: key}},
		options.FindOne().SetProjection(bson.D{{Key: ValueField, Value: 1}}),
	).Decode(&doc)
	if errors.Is(err, drv.ErrNoDocuments) {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return store.Record{Key: key, Value: normalize(doc[ValueField])}, true, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// normalize turns BSON container types into plain Go values so that callers
// see map[string]any and []any. Decimal128 becomes its decimal string.
func normalize(v any) any {
	switch x := v.(type) {
	case primitive.M:
		return normalizeMap(x)
	case map[string]any:
		return normalizeMap(x)
	case primitive.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		return normalizeSlice(x)
	case []any:
		return normalizeSlice(x)
	case primitive.Decimal128:
		return x.String()
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalizeSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = normalize(v)
	}
	return out
}
