// Package memory is a process-local implementation of the repository
// interfaces. It backs APP_STORE=memory and the service and API tests.
package memory

import (
	"context"
	"sync"

	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
)

type state struct {
	users  map[string]models.User
	emails map[string]string // email -> user id
	topics map[string]models.Topic
	audit  []models.AuditLog
}

func newState() *state {
	return &state{
		users:  map[string]models.User{},
		emails: map[string]string{},
		topics: map[string]models.Topic{},
	}
}

func (s *state) clone() *state {
	c := &state{
		users:  make(map[string]models.User, len(s.users)),
		emails: make(map[string]string, len(s.emails)),
		topics: make(map[string]models.Topic, len(s.topics)),
		audit:  append([]models.AuditLog(nil), s.audit...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.emails {
		c.emails[k] = v
	}
	for k, v := range s.topics {
		c.topics[k] = copyTopic(v)
	}
	return c
}

func copyTopic(t models.Topic) models.Topic {
	msgs := make([]models.Message, len(t.Messages))
	copy(msgs, t.Messages)
	t.Messages = msgs
	return t
}

// Store guards one state. Transactions hold the lock for their whole
// duration and work on a clone that replaces the state only on commit.
type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store { return &Store{st: newState()} }

// binding decides which state a repository works on and whether it must lock.
type binding struct {
	mu    *sync.Mutex // nil inside a transaction
	state func() *state
}

func (b binding) with(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.mu != nil {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	return fn(b.state())
}

func (s *Store) binding() binding {
	return binding{mu: &s.mu, state: func() *state { return s.st }}
}

func (s *Store) Users() repo.Users         { return &usersRepo{s.binding()} }
func (s *Store) Topics() repo.Topics       { return &topicsRepo{s.binding()} }
func (s *Store) AuditLogs() repo.AuditLogs { return &auditLogsRepo{s.binding()} }

// WithTx implements repository.Transactor.
func (s *Store) WithTx(ctx context.Context, fn func(repo.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	b := binding{state: func() *state { return work }}
	if err := fn(repo.Tx{
		Users:     &usersRepo{b},
		Topics:    &topicsRepo{b},
		AuditLogs: &auditLogsRepo{b},
	}); err != nil {
		return err
	}
	s.st = work
	return nil
}
