package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
)

const (
	projectKeyPrefix = "project:"    // Key prefix for project data: {prefix}project:{id}
	projectIDSetKey  = "projects"    // Set of all project ids: {prefix}projects
	projectSeqKey    = "project:seq" // Counter used to assign ids: {prefix}project:seq
)

// RedisRepository stores projects as JSON documents in Redis.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a RedisRepository. Every key is namespaced with prefix.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

// redisRecord is the stored document. Hours keep their two fractional digits
// as text so a round trip does not change the scale.
type redisRecord struct {
	ID             int     `json:"id"`
	Name           *string `json:"name"`
	EstimatedHours *string `json:"estimated_hours"`
	ActualHours    *string `json:"actual_hours"`
	Difficulty     *int    `json:"difficulty"`
	Notes          *string `json:"notes"`
}

func (r *RedisRepository) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	id, err := r.client.Incr(ctx, r.key(projectSeqKey)).Result()
	if err != nil {
		return nil, domain.NewStoreError("create", 0, fmt.Errorf("failed to allocate id: %w", err))
	}

	created := p.Clone()
	created.ID = int(id)

	data, err := json.Marshal(toRecord(created))
	if err != nil {
		return nil, domain.NewStoreError("create", created.ID, fmt.Errorf("failed to marshal project: %w", err))
	}

	// Use pipeline for atomic operations
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.projectKey(created.ID), data, 0)
		pipe.SAdd(ctx, r.key(projectIDSetKey), created.ID)
		return nil
	})
	if err != nil {
		return nil, domain.NewStoreError("create", created.ID, err)
	}

	return &created, nil
}

func (r *RedisRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, r.key(projectIDSetKey)).Result()
	if err != nil {
		return nil, domain.NewStoreError("list", 0, err)
	}
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewStoreError("list", 0, fmt.Errorf("corrupt project id %q: %w", raw, err))
		}
		keys = append(keys, r.projectKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.NewStoreError("list", 0, err)
	}

	out := make([]domain.Project, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// id set and documents drifted apart; skip missing documents
			continue
		}
		p, err := decode(s)
		if err != nil {
			return nil, domain.NewStoreError("list", 0, err)
		}
		out = append(out, p)
	}

	sortByName(out)
	return out, nil
}

func (r *RedisRepository) FetchByID(ctx context.Context, id int) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.projectKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewStoreError("fetch", id, err)
	}

	p, err := decode(data)
	if err != nil {
		return nil, domain.NewStoreError("fetch", id, err)
	}
	return &p, nil
}

func (r *RedisRepository) Update(ctx context.Context, p domain.Project) error {
	data, err := json.Marshal(toRecord(p))
	if err != nil {
		return domain.NewStoreError("update", p.ID, fmt.Errorf("failed to marshal project: %w", err))
	}

	// SET XX only writes when the key already exists
	ok, err := r.client.SetXX(ctx, r.projectKey(p.ID), data, 0).Result()
	if err != nil {
		return domain.NewStoreError("update", p.ID, err)
	}
	if !ok {
		return domain.NewStoreError("update", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id int) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.projectKey(id))
		pipe.SRem(ctx, r.key(projectIDSetKey), id)
		return nil
	})
	if err != nil {
		return domain.NewStoreError("delete", id, err)
	}
	if del.Val() == 0 {
		return domain.NewStoreError("delete", id, domain.ErrNotFound)
	}
	return nil
}

func (r *RedisRepository) key(name string) string {
	return r.prefix + name
}

func (r *RedisRepository) projectKey(id int) string {
	return r.key(projectKeyPrefix + strconv.Itoa(id))
}

func toRecord(p domain.Project) redisRecord {
	rec := redisRecord{
		ID:         p.ID,
		Name:       p.Name,
		Difficulty: p.Difficulty,
		Notes:      p.Notes,
	}
	if p.EstimatedHours != nil {
		s := p.EstimatedHours.StringFixed(domain.HoursScale)
		rec.EstimatedHours = &s
	}
	if p.ActualHours != nil {
		s := p.ActualHours.StringFixed(domain.HoursScale)
		rec.ActualHours = &s
	}
	return rec
}

func decode(data string) (domain.Project, error) {
	var rec redisRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return domain.Project{}, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	p := domain.Project{
		ID:         rec.ID,
		Name:       rec.Name,
		Difficulty: rec.Difficulty,
		Notes:      rec.Notes,
	}
	var err error
	if p.EstimatedHours, err = parseHours(rec.EstimatedHours); err != nil {
		return domain.Project{}, err
	}
	if p.ActualHours, err = parseHours(rec.ActualHours); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func parseHours(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("corrupt hours value %q: %w", *s, err)
	}
	return &d, nil
}
