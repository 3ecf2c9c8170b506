package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/pkg/logger"
)

// TaskTTL is how long a cached task lives in Redis.
const TaskTTL = time.Hour

// CachedTaskStore puts a Redis read-through cache in front of a TaskStore.
// The wrapped store stays the source of truth: Redis errors are logged and
// the call falls through.
type CachedTaskStore struct {
	next repository.TaskStore
	rdb  *redis.Client
	log  *logger.Loggers
}

var _ repository.TaskStore = (*CachedTaskStore)(nil)

func NewCachedTaskStore(next repository.TaskStore, rdb *redis.Client, log *logger.Loggers) *CachedTaskStore {
	return &CachedTaskStore{next: next, rdb: rdb, log: log}
}

func taskKey(id int64) string {
	return fmt.Sprintf("task:%d", id)
}

// List is never cached, pages shift whenever a task is created or deleted.
func (s *CachedTaskStore) List(ctx context.Context, limit, offset int) ([]models.Task, error) {
	return s.next.List(ctx, limit, offset)
}

func (s *CachedTaskStore) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	cached, err := s.rdb.Get(ctx, taskKey(id)).Bytes()
	switch {
	case err == nil:
		var task models.Task
		decodeErr := json.Unmarshal(cached, &task)
		if decodeErr == nil {
			return &task, nil
		}
		s.log.Error.Error("Error decoding cached task", zap.Int64("task_id", id), zap.Error(decodeErr))
	case !errors.Is(err, redis.Nil):
		s.log.Error.Error("Error reading task cache", zap.Int64("task_id", id), zap.Error(err))
	}

	task, err := s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, task)
	return task, nil
}

func (s *CachedTaskStore) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	task, err := s.next.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.store(ctx, task)
	return task, nil
}

func (s *CachedTaskStore) Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	task, err := s.next.Update(ctx, id, in)
	if err != nil {
		// row mungkin sudah dihapus, buang cache lama
		if errors.Is(err, repository.ErrTaskNotFound) {
			s.evict(ctx, id)
		}
		return nil, err
	}
	s.store(ctx, task)
	return task, nil
}

func (s *CachedTaskStore) Delete(ctx context.Context, id int64) error {
	err := s.next.Delete(ctx, id)
	if err == nil || errors.Is(err, repository.ErrTaskNotFound) {
		s.evict(ctx, id)
	}
	return err
}

func (s *CachedTaskStore) store(ctx context.Context, task *models.Task) {
	data, err := json.Marshal(task)
	if err != nil {
		s.log.Error.Error("Error encoding task to JSON", zap.Error(err))
		return
	}
	if err := s.rdb.Set(ctx, taskKey(task.ID), data, TaskTTL).Err(); err != nil {
		s.log.Error.Error("Error caching task", zap.Int64("task_id", task.ID), zap.Error(err))
	}
}

func (s *CachedTaskStore) evict(ctx context.Context, id int64) {
	if err := s.rdb.Del(ctx, taskKey(id)).Err(); err != nil {
		s.log.Error.Error("Error evicting cached task", zap.Int64("task_id", id), zap.Error(err))
	}
}
