package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
	"github.com/google/uuid"
)

type topicsRepo struct{ b binding }

func (r *topicsRepo) Create(ctx context.Context, t *models.Topic) error {
	return r.b.with(ctx, func(st *state) error {
		t.ID = uuid.NewString()
		for i := range t.Messages {
			t.Messages[i].ID = uuid.NewString()
			t.Messages[i].TopicID = t.ID
		}
		st.topics[t.ID] = copyTopic(*t)
		return nil
	})
}

func (r *topicsRepo) ExistsByTitleAndMessage(ctx context.Context, title, content string) (bool, error) {
	var found bool
	err := r.b.with(ctx, func(st *state) error {
		for _, t := range st.topics {
			if t.Title != title {
				continue
			}
			for _, m := range t.Messages {
				if m.Content == content {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

func (r *topicsRepo) GetByID(ctx context.Context, id string) (models.Topic, error) {
	var t models.Topic
	err := r.b.with(ctx, func(st *state) error {
		stored, ok := st.topics[id]
		if !ok {
			return repo.ErrNotFound
		}
		t = copyTopic(stored)
		return nil
	})
	return t, err
}

func (r *topicsRepo) ListActive(ctx context.Context, f models.TopicFilter, p models.PageRequest) (models.Page[models.Topic], error) {
	out := models.Page[models.Topic]{Items: []models.Topic{}, Request: p}
	err := r.b.with(ctx, func(st *state) error {
		var all []models.Topic
		for _, t := range st.topics {
			if t.IsClosed() {
				continue
			}
			if f.Course != nil && t.Course != *f.Course {
				continue
			}
			all = append(all, t)
		}
		sort.Slice(all, func(i, j int) bool {
			c := compareTopics(all[i], all[j], p.Sort)
			if c == 0 {
				return all[i].ID < all[j].ID
			}
			if p.Desc {
				return c > 0
			}
			return c < 0
		})

		out.Total = len(all)
		start := p.Offset()
		if start < 0 || start >= len(all) {
			return nil
		}
		end := min(start+p.Size, len(all))
		for _, t := range all[start:end] {
			out.Items = append(out.Items, copyTopic(t))
		}
		return nil
	})
	return out, err
}

func compareTopics(a, b models.Topic, field models.SortField) int {
	switch field {
	case models.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case models.SortByID:
		return strings.Compare(a.ID, b.ID)
	default:
		return a.Date.Compare(b.Date)
	}
}

func (r *topicsRepo) Update(ctx context.Context, t models.Topic) error {
	return r.b.with(ctx, func(st *state) error {
		stored, ok := st.topics[t.ID]
		if !ok {
			return repo.ErrNotFound
		}
		stored.Status = t.Status
		stored.Date = t.Date
		st.topics[t.ID] = stored
		return nil
	})
}

func (r *topicsRepo) AddMessage(ctx context.Context, m *models.Message) error {
	return r.b.with(ctx, func(st *state) error {
		t, ok := st.topics[m.TopicID]
		if !ok {
			return repo.ErrNotFound
		}
		m.ID = uuid.NewString()
		t.Messages = append(t.Messages, *m)
		st.topics[t.ID] = t
		return nil
	})
}

func (r *topicsRepo) DeleteMessage(ctx context.Context, topicID, messageID string) error {
	return r.b.with(ctx, func(st *state) error {
		t, ok := st.topics[topicID]
		if !ok || !t.RemoveMessage(messageID) {
			return repo.ErrNotFound
		}
		st.topics[topicID] = t
		return nil
	})
}
