package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/forohub/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Users interface {
	// Create returns ErrDuplicate when the email is already registered.
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Topics interface {
	// Create assigns ids to the topic and its messages and stores both.
	Create(ctx context.Context, t *models.Topic) error
	ExistsByTitleAndMessage(ctx context.Context, title, content string) (bool, error)
	// GetByID loads the topic with its messages in insertion order.
	GetByID(ctx context.Context, id string) (models.Topic, error)
	ListActive(ctx context.Context, f models.TopicFilter, p models.PageRequest) (models.Page[models.Topic], error)
	// Update writes back status and date.
	Update(ctx context.Context, t models.Topic) error
	AddMessage(ctx context.Context, m *models.Message) error
	DeleteMessage(ctx context.Context, topicID, messageID string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error)
}

// Tx is the set of repositories bound to one store transaction.
type Tx struct {
	Users     Users
	Topics    Topics
	AuditLogs AuditLogs
}

type Transactor interface {
	// WithTx commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Tx) error) error
}
