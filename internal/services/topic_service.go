package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/baharkarakas/forohub/internal/metrics"
	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
)

const auditEntityTopic = "topic"

// NewTopicInput is the payload of a topic registration.
type NewTopicInput struct {
	Title   string `json:"titulo"`
	Content string `json:"mensaje"`
	Author  string `json:"autor"`
	Course  string `json:"curso"`
}

func (in NewTopicInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, notBlank, validation.RuneLength(1, 200)),
		validation.Field(&in.Content, validation.Required, notBlank),
		validation.Field(&in.Author, validation.Required, notBlank, validation.RuneLength(1, 100)),
		validation.Field(&in.Course, validation.Required, notBlank),
	)
}

// UpdateTopicInput carries the optional fields of a topic update.
type UpdateTopicInput struct {
	Content *string `json:"mensaje"`
	Author  *string `json:"autor"`
}

func (in UpdateTopicInput) Validate() error {
	if in.Content == nil {
		return nil
	}
	return validation.Errors{
		"mensaje": validation.Validate(*in.Content, validation.Required, notBlank),
		"autor":   validation.Validate(in.Author, validation.Required, notBlank),
	}.Filter()
}

// NewMessageInput is the payload of an appended message.
type NewMessageInput struct {
	Content string `json:"contenido"`
	Author  string `json:"autor"`
}

func (in NewMessageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Content, validation.Required, notBlank),
		validation.Field(&in.Author, validation.Required, notBlank, validation.RuneLength(1, 100)),
	)
}

type TopicService struct {
	topics repo.Topics
	logs   repo.AuditLogs
	tx     repo.Transactor
	now    func() time.Time
}

func NewTopicService(topics repo.Topics, logs repo.AuditLogs, tx repo.Transactor) *TopicService {
	return &TopicService{
		topics: topics,
		logs:   logs,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an OPEN topic seeded with its first message. A topic whose
// title and message both match an existing one, closed or not, is rejected.
func (s *TopicService) Register(ctx context.Context, in NewTopicInput) (models.Topic, error) {
	if err := in.Validate(); err != nil {
		return models.Topic{}, err
	}
	course, err := models.ParseCourse(in.Course)
	if err != nil {
		return models.Topic{}, fmt.Errorf("%w: %q", ErrInvalidCourse, in.Course)
	}
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)

	var t models.Topic
	err = s.tx.WithTx(ctx, func(tx repo.Tx) error {
		dup, err := tx.Topics.ExistsByTitleAndMessage(ctx, title, in.Content)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateTopic
		}
		t = models.NewTopic(title, in.Content, author, course, s.now())
		if err := tx.Topics.Create(ctx, &t); err != nil {
			return err
		}
		return audit(ctx, tx, t.ID, models.AuditTopicCreated, map[string]any{"curso": string(course)})
	})
	if err != nil {
		return models.Topic{}, err
	}
	metrics.TopicsTotal.WithLabelValues("created").Inc()
	slog.InfoContext(ctx, "topic registered", "topic_id", t.ID, "course", course)
	return t, nil
}

// List returns a page of topics that are not CLOSED.
func (s *TopicService) List(ctx context.Context, p models.PageRequest) (models.Page[models.TopicSummary], error) {
	return s.list(ctx, models.TopicFilter{}, p)
}

// SearchByCourse is List narrowed to one course; the name is matched
// case-insensitively.
func (s *TopicService) SearchByCourse(ctx context.Context, courseName string, p models.PageRequest) (models.Page[models.TopicSummary], error) {
	course, err := models.ParseCourse(courseName)
	if err != nil {
		return models.Page[models.TopicSummary]{}, fmt.Errorf("%w: %q", ErrInvalidCourse, courseName)
	}
	return s.list(ctx, models.TopicFilter{Course: &course}, p)
}

func (s *TopicService) list(ctx context.Context, f models.TopicFilter, p models.PageRequest) (models.Page[models.TopicSummary], error) {
	page, err := s.topics.ListActive(ctx, f, p)
	if err != nil {
		return models.Page[models.TopicSummary]{}, err
	}
	return models.MapPage(page, models.Topic.Summary), nil
}

// GetByID returns the topic whatever its status.
func (s *TopicService) GetByID(ctx context.Context, id string) (models.Topic, error) {
	if !validID(id) {
		return models.Topic{}, ErrTopicNotFound
	}
	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return models.Topic{}, topicErr(err)
	}
	return t, nil
}

// Update appends a message when content is given, then marks the topic
// UPDATED and refreshes its date. It returns the last message in insertion
// order.
func (s *TopicService) Update(ctx context.Context, id string, in UpdateTopicInput) (models.Message, error) {
	if err := in.Validate(); err != nil {
		return models.Message{}, err
	}
	if !validID(id) {
		return models.Message{}, ErrTopicNotFound
	}

	var last models.Message
	err := s.tx.WithTx(ctx, func(tx repo.Tx) error {
		t, err := tx.Topics.GetByID(ctx, id)
		if err != nil {
			return topicErr(err)
		}
		if t.IsClosed() {
			return ErrTopicClosed
		}
		now := s.now()
		details := map[string]any{}
		if in.Content != nil {
			m := models.NewMessage(*in.Content, strings.TrimSpace(*in.Author), now)
			m.TopicID = t.ID
			if err := tx.Topics.AddMessage(ctx, &m); err != nil {
				return err
			}
			t.AddMessage(m)
			details["message_id"] = m.ID
		}
		t.MarkUpdated(now)
		if err := tx.Topics.Update(ctx, t); err != nil {
			return topicErr(err)
		}

		var ok bool
		if last, ok = t.LastMessage(); !ok {
			return ErrNoMessages
		}
		return audit(ctx, tx, t.ID, models.AuditTopicUpdated, details)
	})
	if err != nil {
		return models.Message{}, err
	}
	metrics.TopicsTotal.WithLabelValues("updated").Inc()
	if in.Content != nil {
		metrics.MessagesTotal.WithLabelValues("added").Inc()
	}
	return last, nil
}

// AppendMessage adds a message to the topic without touching its status.
func (s *TopicService) AppendMessage(ctx context.Context, topicID string, in NewMessageInput) (models.Message, error) {
	if err := in.Validate(); err != nil {
		return models.Message{}, err
	}
	if !validID(topicID) {
		return models.Message{}, ErrTopicNotFound
	}

	var m models.Message
	err := s.tx.WithTx(ctx, func(tx repo.Tx) error {
		t, err := tx.Topics.GetByID(ctx, topicID)
		if err != nil {
			return topicErr(err)
		}
		if t.IsClosed() {
			return ErrTopicClosed
		}
		m = models.NewMessage(in.Content, strings.TrimSpace(in.Author), s.now())
		m.TopicID = t.ID
		if err := tx.Topics.AddMessage(ctx, &m); err != nil {
			return topicErr(err)
		}
		return audit(ctx, tx, t.ID, models.AuditMessageAdded, map[string]any{"message_id": m.ID})
	})
	if err != nil {
		return models.Message{}, err
	}
	metrics.MessagesTotal.WithLabelValues("added").Inc()
	return m, nil
}

// Close marks the topic CLOSED. Closing a closed topic succeeds.
func (s *TopicService) Close(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrTopicNotFound
	}
	changed := false
	err := s.tx.WithTx(ctx, func(tx repo.Tx) error {
		t, err := tx.Topics.GetByID(ctx, id)
		if err != nil {
			return topicErr(err)
		}
		if t.IsClosed() {
			return nil
		}
		t.Close()
		if err := tx.Topics.Update(ctx, t); err != nil {
			return topicErr(err)
		}
		changed = true
		return audit(ctx, tx, t.ID, models.AuditTopicClosed, nil)
	})
	if err != nil {
		return err
	}
	if changed {
		metrics.TopicsTotal.WithLabelValues("closed").Inc()
		slog.InfoContext(ctx, "topic closed", "topic_id", id)
	}
	return nil
}

// RemoveMessage permanently deletes one message of the topic.
func (s *TopicService) RemoveMessage(ctx context.Context, topicID, messageID string) error {
	if !validID(topicID) {
		return ErrTopicNotFound
	}
	if !validID(messageID) {
		return ErrMessageNotFound
	}
	err := s.tx.WithTx(ctx, func(tx repo.Tx) error {
		if _, err := tx.Topics.GetByID(ctx, topicID); err != nil {
			return topicErr(err)
		}
		if err := tx.Topics.DeleteMessage(ctx, topicID, messageID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMessageNotFound
			}
			return err
		}
		return audit(ctx, tx, topicID, models.AuditMessageRemove, map[string]any{"message_id": messageID})
	})
	if err != nil {
		return err
	}
	metrics.MessagesTotal.WithLabelValues("removed").Inc()
	return nil
}

// History lists the audit trail of a topic, oldest first.
func (s *TopicService) History(ctx context.Context, id string) ([]models.AuditLog, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	logs, err := s.logs.ListByEntity(ctx, auditEntityTopic, id)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}

func audit(ctx context.Context, tx repo.Tx, topicID, action string, details map[string]any) error {
	if len(details) == 0 {
		details = nil
	}
	return tx.AuditLogs.Create(ctx, models.AuditLog{
		EntityType: auditEntityTopic,
		EntityID:   &topicID,
		Action:     action,
		Details:    details,
	})
}

func topicErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTopicNotFound
	}
	return err
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
