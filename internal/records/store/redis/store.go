// Package redis implements the record stores on Redis.
//
// Each record is one key holding a JSON envelope of the row plus its version.
// Save runs a Lua script so the version compare and the overwrite execute as
// a single atomic step on the server, mirroring the conditional UPDATE of the
// PostgreSQL backend.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	"daybook/pkg/platform/sentinel"
	"daybook/pkg/requestcontext"
)

// Script results for the conditional save.
const (
	saveNotFound = -1
	saveConflict = -2
)

var saveScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	return -1
end
local envelope = cjson.decode(current)
if envelope.version ~= tonumber(ARGV[1]) then
	return -2
end
redis.call('SET', KEYS[1], ARGV[2])
return tonumber(ARGV[1]) + 1
`)

type envelope[R any] struct {
	Version int64 `json:"version"`
	Row     R     `json:"row"`
}

// Store is the generic Redis-backed record store.
type Store[T, R any] struct {
	client *redis.Client
	mapper store.Mapper[T, R]
	prefix string
}

// New constructs a Redis-backed store. The prefix namespaces one record kind,
// e.g. "daybook:contacts".
func New[T, R any](client *redis.Client, mapper store.Mapper[T, R], prefix string) *Store[T, R] {
	return &Store[T, R]{client: client, mapper: mapper, prefix: prefix}
}

// Convenience constructors for the three record kinds.

func NewContacts(client *redis.Client) *Store[*models.Contact, store.ContactRow] {
	return New[*models.Contact, store.ContactRow](client, store.ContactMapper{}, "daybook:contacts")
}

func NewTasks(client *redis.Client) *Store[*models.Task, store.TaskRow] {
	return New[*models.Task, store.TaskRow](client, store.TaskMapper{}, "daybook:tasks")
}

func NewAppointments(client *redis.Client) *Store[*models.Appointment, store.AppointmentRow] {
	return New[*models.Appointment, store.AppointmentRow](client, store.AppointmentMapper{}, "daybook:appointments")
}

func (s *Store[T, R]) key(id string) string {
	return s.prefix + ":" + id
}

func (s *Store[T, R]) encode(row R, version int64) (string, error) {
	payload, err := json.Marshal(envelope[R]{Version: version, Row: row})
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(payload), nil
}

func (s *Store[T, R]) Create(ctx context.Context, entity T) error {
	row := s.mapper.ToRow(entity)
	payload, err := s.encode(row, 0)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, s.key(s.mapper.ID(row)), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	if !ok {
		return sentinel.ErrAlreadyExists
	}
	return nil
}

func (s *Store[T, R]) Load(ctx context.Context, id string) (store.Versioned[T], error) {
	payload, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return store.Versioned[T]{}, sentinel.ErrNotFound
		}
		return store.Versioned[T]{}, fmt.Errorf("load record: %w", err)
	}

	var env envelope[R]
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return store.Versioned[T]{}, fmt.Errorf("decode record %q: %w", id, err)
	}
	entity, err := store.Translate(s.mapper, env.Row, requestcontext.Now(ctx))
	if err != nil {
		return store.Versioned[T]{}, err
	}
	return store.Versioned[T]{Entity: entity, Version: env.Version}, nil
}

func (s *Store[T, R]) Save(ctx context.Context, entity T, expectedVersion int64) (int64, error) {
	row := s.mapper.ToRow(entity)
	payload, err := s.encode(row, expectedVersion+1)
	if err != nil {
		return 0, err
	}

	result, err := saveScript.Run(ctx, s.client,
		[]string{s.key(s.mapper.ID(row))}, expectedVersion, payload).Int64()
	if err != nil {
		return 0, fmt.Errorf("save record: %w", err)
	}
	switch result {
	case saveNotFound:
		return 0, sentinel.ErrNotFound
	case saveConflict:
		return 0, sentinel.ErrVersionConflict
	default:
		return result, nil
	}
}

func (s *Store[T, R]) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if removed == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store[T, R]) List(ctx context.Context) ([]T, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	payloads, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	now := requestcontext.Now(ctx)
	entities := make([]T, 0, len(payloads))
	for i, payload := range payloads {
		raw, ok := payload.(string)
		if !ok {
			// Key vanished between SCAN and MGET.
			continue
		}
		var env envelope[R]
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			return nil, fmt.Errorf("decode record %q: %w", keys[i], err)
		}
		entity, err := store.Translate(s.mapper, env.Row, now)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
