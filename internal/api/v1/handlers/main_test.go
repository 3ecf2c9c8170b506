package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"task-api/internal/auth"
	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/pkg/crypto"
	"task-api/pkg/logger"
)

var errStoreDown = errors.New("connection refused")

// memTaskStore is an in-memory TaskStore. Setting fail makes every call error.
type memTaskStore struct {
	mu     sync.Mutex
	tasks  map[int64]models.Task
	nextID int64
	calls  int
	fail   bool
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: map[int64]models.Task{}}
}

func (s *memTaskStore) enter() error {
	s.calls++
	if s.fail {
		return errStoreDown
	}
	return nil
}

func (s *memTaskStore) List(ctx context.Context, limit, offset int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []models.Task{}
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		out = append(out, s.tasks[ids[i]])
	}
	return out, nil
}

func (s *memTaskStore) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return &t, nil
}

func (s *memTaskStore) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	s.nextID++
	t := models.Task{ID: s.nextID, Title: in.Title, Description: in.Description, Status: in.Status, CreatedAt: time.Now().UTC()}
	s.tasks[t.ID] = t
	return &t, nil
}

func (s *memTaskStore) Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	now := time.Now().UTC()
	t.Title, t.Description, t.Status, t.UpdatedAt = in.Title, in.Description, in.Status, &now
	s.tasks[id] = t
	return &t, nil
}

func (s *memTaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return err
	}
	if _, ok := s.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

type memUsers struct {
	users map[string]models.User
	fail  bool
}

func (u *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u.fail {
		return nil, errStoreDown
	}
	user, ok := u.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

func newMemUsers(t *testing.T) *memUsers {
	t.Helper()
	hash, err := crypto.HashPassword("123456789123456")
	require.NoError(t, err)
	return &memUsers{users: map[string]models.User{
		"testuser1": {ID: 1, Username: "testuser1", Password: hash},
	}}
}

// createTestApp menginisialisasi aplikasi Fiber dengan route yang akan di-test.
// Task routes are mounted without the auth gate; the gate has its own tests.
func createTestApp(store *memTaskStore, users *memUsers, tokens TokenIssuer) *fiber.App {
	log := logger.NewNop()
	validate := validator.New()
	taskHandler := NewTaskHandler(store, validate, log)
	authHandler := NewAuthHandler(users, tokens, validate, log)

	app := fiber.New()
	app.Post("/auth/login", authHandler.Login)
	app.Get("/tasks", taskHandler.ListTasks)
	app.Get("/tasks/:id", taskHandler.GetTask)
	app.Post("/tasks", taskHandler.CreateTask)
	app.Put("/tasks/:id", taskHandler.UpdateTask)
	app.Delete("/tasks/:id", taskHandler.DeleteTask)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

var testTokens = auth.NewTokenService("handler-secret")
