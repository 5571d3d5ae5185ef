package mongo

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	drv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeFinder struct {
	docs   map[string]bson.D
	err    error
	filter any
}

func (f *fakeFinder) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *drv.SingleResult {
	f.filter = filter
	if f.err != nil {
		return drv.NewSingleResultFromDocument(bson.D{}, f.err, nil)
	}
	key := filter.(bson.D)[0].Value.(string)
	doc, ok := f.docs[key]
	if !ok {
		return drv.NewSingleResultFromDocument(bson.D{}, drv.ErrNoDocuments, nil)
	}
	return drv.NewSingleResultFromDocument(doc, nil, nil)
}

func TestFetchByKeyFound(t *testing.T) {
	ctx := context.Background()
	f := &fakeFinder{docs: map[string]bson.D{
		"rate_limit": {{Key: "key", Value: "rate_limit"}, {Key: "value", Value: 12.5}},
		"hosts":      {{Key: "key", Value: "hosts"}, {Key: "value", Value: bson.A{"a", "b"}}},
		"limits": {{Key: "key", Value: "limits"}, {Key: "value", Value: bson.D{
			{Key: "rps", Value: int32(10)},
			{Key: "tags", Value: bson.A{"x"}},
		}}},
	}}
	s := &Store{coll: f}

	rec, ok, err := s.FetchByKey(ctx, "rate_limit")
	if err != nil || !ok || rec.Value != 12.5 || rec.Key != "rate_limit" {
		t.Fatalf("rate_limit: rec=%+v ok=%v err=%v", rec, ok, err)
	}
	want := bson.D{{Key: KeyField, Value: "rate_limit"}}
	if !reflect.DeepEqual(f.filter, want) {
		t.Fatalf("filter = %v want %v", f.filter, want)
	}

	rec, _, err = s.FetchByKey(ctx, "hosts")
	if err != nil || !reflect.DeepEqual(rec.Value, []any{"a", "b"}) {
		t.Fatalf("hosts: %#v err=%v", rec.Value, err)
	}

	rec, _, err = s.FetchByKey(ctx, "limits")
	wantMap := map[string]any{"rps": int32(10), "tags": []any{"x"}}
	if err != nil || !reflect.DeepEqual(rec.Value, wantMap) {
		t.Fatalf("limits: %#v err=%v", rec.Value, err)
	}
}

func TestFetchByKeyMissingValueField(t *testing.T) {
	f := &fakeFinder{docs: map[string]bson.D{"empty": {{Key: "key", Value: "empty"}}}}
	s := &Store{coll: f}

	rec, ok, err := s.FetchByKey(context.Background(), "empty")
	if err != nil || !ok || rec.Value != nil {
		t.Fatalf("want found with nil value, got rec=%+v ok=%v err=%v", rec, ok, err)
	}
}

func TestFetchByKeyNoDocument(t *testing.T) {
	s := &Store{coll: &fakeFinder{docs: map[string]bson.D{}}}
	_, ok, err := s.FetchByKey(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("want clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestFetchByKeyError(t *testing.T) {
	boom := errors.New("server selection timeout")
	s := &Store{coll: &fakeFinder{err: boom}}
	_, ok, err := s.FetchByKey(context.Background(), "any")
	if ok || !errors.Is(err, boom) {
		t.Fatalf("want transport error, got ok=%v err=%v", ok, err)
	}
}

func TestNormalize(t *testing.T) {
	dec, err := primitive.ParseDecimal128("12.75")
	if err != nil {
		t.Fatal(err)
	}
	in := primitive.M{
		"d": primitive.D{{Key: "n", Value: primitive.A{int64(1), dec}}},
		"s": "plain",
	}
	want := map[string]any{
		"d": map[string]any{"n": []any{int64(1), "12.75"}},
		"s": "plain",
	}
	if got := normalize(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("normalize = %#v want %#v", got, want)
	}
}

func TestNewRequiresNamespace(t *testing.T) {
	if _, err := New(context.Background(), Config{Host: "localhost"}); !errors.Is(err, ErrNoNamespace) {
		t.Fatalf("want ErrNoNamespace, got %v", err)
	}
	if _, err := NewWithCollection(nil); !errors.Is(err, ErrNilCollection) {
		t.Fatalf("want ErrNilCollection, got %v", err)
	}
}

func TestCloseWithoutOwnedClient(t *testing.T) {
	s := &Store{coll: &fakeFinder{}}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
