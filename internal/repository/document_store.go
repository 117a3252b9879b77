package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// userRecord is the on-disk shape of a user; unlike domain.User it keeps
// the password.
type userRecord struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	ManagerID *int64      `json:"managerId"`
}

func (r userRecord) user() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		ManagerID: r.ManagerID,
	}
}

func recordOf(u *domain.User) userRecord {
	return userRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		ManagerID: u.ManagerID,
	}
}

type document struct {
	Users []userRecord   `json:"users"`
	Tasks []*domain.Task `json:"tasks"`
}

// DocumentStore keeps users and tasks in one pretty-printed JSON file.
// Every operation reads the file afresh; mutations are serialized by a
// single writer lock so concurrent requests cannot lose updates.
type DocumentStore struct {
	path string
	mu   sync.RWMutex
}

func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

func (s *DocumentStore) Path() string { return s.path }

// load reads the document. A missing or unreadable file yields an empty
// dataset; the failure is logged, not returned.
func (s *DocumentStore) load() *document {
	doc := &document{}
	b, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("data file not found, starting empty", "path", s.path)
	case err != nil:
		logger.Error("failed to read data file", "path", s.path, "error", err)
	default:
		if err := json.Unmarshal(b, doc); err != nil {
			logger.Error("failed to parse data file", "path", s.path, "error", err)
			doc = &document{}
		}
	}
	if doc.Users == nil {
		doc.Users = []userRecord{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []*domain.Task{}
	}
	return doc
}

func (s *DocumentStore) save(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *DocumentStore) read() *document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// mutate runs fn under the writer lock and saves the document when fn
// succeeds.
func (s *DocumentStore) mutate(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("data directory is not a directory")
	}
	return nil
}

func (s *DocumentStore) Close() {}

// Users

func (s *DocumentStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	doc := s.read()
	res := make([]*domain.User, 0, len(doc.Users))
	for _, r := range doc.Users {
		res = append(res, r.user())
	}
	return res, nil
}

func (s *DocumentStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	doc := s.read()
	for _, r := range doc.Users {
		if r.ID == id {
			return r.user(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *DocumentStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc := s.read()
	for _, r := range doc.Users {
		if r.Email == email {
			return r.user(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *DocumentStore) CreateUser(ctx context.Context, u *domain.User) error {
	return s.mutate(func(doc *document) error {
		ids := make([]int64, 0, len(doc.Users))
		for _, r := range doc.Users {
			if r.Email == u.Email {
				return domain.ErrEmailExists
			}
			ids = append(ids, r.ID)
		}
		u.ID = domain.NextID(ids)
		doc.Users = append(doc.Users, recordOf(u))
		return nil
	})
}

func (s *DocumentStore) UpdateUser(ctx context.Context, id int64, fn func(*domain.User) error) (*domain.User, error) {
	var updated *domain.User
	err := s.mutate(func(doc *document) error {
		idx := -1
		for i, r := range doc.Users {
			if r.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return domain.ErrUserNotFound
		}

		u := doc.Users[idx].user()
		if err := fn(u); err != nil {
			return err
		}
		u.ID = id
		for i, r := range doc.Users {
			if i != idx && r.Email == u.Email {
				return domain.ErrEmailExists
			}
		}
		doc.Users[idx] = recordOf(u)
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DocumentStore) DeleteUser(ctx context.Context, id int64) error {
	return s.mutate(func(doc *document) error {
		for i, r := range doc.Users {
			if r.ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

// Tasks

func (s *DocumentStore) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.read().Tasks, nil
}

func (s *DocumentStore) filterTasks(keep func(*domain.Task) bool) []*domain.Task {
	res := []*domain.Task{}
	for _, t := range s.read().Tasks {
		if keep(t) {
			res = append(res, t)
		}
	}
	return res
}

func (s *DocumentStore) ListTasksAssignedTo(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.filterTasks(func(t *domain.Task) bool {
		return t.AssignedTo != nil && *t.AssignedTo == userID
	}), nil
}

func (s *DocumentStore) ListTasksCreatedBy(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.filterTasks(func(t *domain.Task) bool {
		return t.CreatedBy == userID
	}), nil
}

func (s *DocumentStore) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	for _, t := range s.read().Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (s *DocumentStore) CreateTask(ctx context.Context, t *domain.Task) error {
	return s.mutate(func(doc *document) error {
		ids := make([]int64, 0, len(doc.Tasks))
		for _, existing := range doc.Tasks {
			ids = append(ids, existing.ID)
		}
		t.ID = domain.NextID(ids)
		doc.Tasks = append(doc.Tasks, t)
		return nil
	})
}

func (s *DocumentStore) UpdateTask(ctx context.Context, id int64, fn func(*domain.Task) error) (*domain.Task, error) {
	var updated *domain.Task
	err := s.mutate(func(doc *document) error {
		for _, t := range doc.Tasks {
			if t.ID != id {
				continue
			}
			if err := fn(t); err != nil {
				return err
			}
			t.ID = id
			updated = t
			return nil
		}
		return domain.ErrTaskNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DocumentStore) DeleteTask(ctx context.Context, id int64) error {
	return s.mutate(func(doc *document) error {
		for i, t := range doc.Tasks {
			if t.ID == id {
				doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
				return nil
			}
		}
		return domain.ErrTaskNotFound
	})
}
