package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type topicsRepo struct{ db querier }

const (
	topicColumns   = `id, title, posted_at, status, author, course`
	messageColumns = `id, topic_id, content, posted_at, author`
)

// sortColumns whitelists the columns a listing may be ordered by.
var sortColumns = map[models.SortField]string{
	models.SortByDate:  "posted_at",
	models.SortByTitle: "title",
	models.SortByID:    "id",
}

func (r *topicsRepo) Create(ctx context.Context, t *models.Topic) error {
	t.ID = uuid.NewString()
	_, err := r.db.Exec(ctx,
		`INSERT INTO topics(`+topicColumns+`) VALUES($1,$2,$3,$4,$5,$6)`,
		t.ID, t.Title, t.Date, string(t.Status), t.Author, string(t.Course),
	)
	if err != nil {
		return mapErr(err)
	}
	for i := range t.Messages {
		t.Messages[i].TopicID = t.ID
		if err := r.AddMessage(ctx, &t.Messages[i]); err != nil {
			return err
		}
	}
	return nil
}

// ExistsByTitleAndMessage takes a transaction-scoped advisory lock on the
// title first, so concurrent registrations of the same title serialise until
// the caller's transaction ends.
func (r *topicsRepo) ExistsByTitleAndMessage(ctx context.Context, title, content string) (bool, error) {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, title); err != nil {
		return false, mapErr(err)
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM topics t JOIN messages m ON m.topic_id = t.id
		    WHERE t.title = $1 AND m.content = $2)`,
		title, content,
	).Scan(&exists)
	return exists, mapErr(err)
}

func (r *topicsRepo) GetByID(ctx context.Context, id string) (models.Topic, error) {
	t, err := scanTopic(r.db.QueryRow(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE id=$1`, id))
	if err != nil {
		return models.Topic{}, mapErr(err)
	}
	byTopic, err := r.loadMessages(ctx, []string{t.ID})
	if err != nil {
		return models.Topic{}, err
	}
	t.Messages = byTopic[t.ID]
	if t.Messages == nil {
		t.Messages = []models.Message{}
	}
	return t, nil
}

func (r *topicsRepo) ListActive(ctx context.Context, f models.TopicFilter, p models.PageRequest) (models.Page[models.Topic], error) {
	out := models.Page[models.Topic]{Items: []models.Topic{}, Request: p}

	where := []string{"status <> 'CLOSED'"}
	var args []any
	if f.Course != nil {
		args = append(args, string(*f.Course))
		where = append(where, fmt.Sprintf("course = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM topics WHERE `+cond, args...).Scan(&out.Total); err != nil {
		return out, mapErr(err)
	}
	if out.Total == 0 || p.Offset() < 0 || p.Offset() >= out.Total {
		return out, nil
	}

	col, ok := sortColumns[p.Sort]
	if !ok {
		col = sortColumns[models.SortByDate]
	}
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	args = append(args, p.Size, p.Offset())
	q := fmt.Sprintf(`SELECT %s FROM topics WHERE %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		topicColumns, cond, col, dir, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return out, mapErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	rows.Close()

	byTopic, err := r.loadMessages(ctx, ids)
	if err != nil {
		return out, err
	}
	for i := range out.Items {
		msgs := byTopic[out.Items[i].ID]
		if msgs == nil {
			msgs = []models.Message{}
		}
		out.Items[i].Messages = msgs
	}
	return out, nil
}

func (r *topicsRepo) Update(ctx context.Context, t models.Topic) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE topics SET status=$2, posted_at=$3 WHERE id=$1`,
		t.ID, string(t.Status), t.Date,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *topicsRepo) AddMessage(ctx context.Context, m *models.Message) error {
	m.ID = uuid.NewString()
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages(`+messageColumns+`) VALUES($1,$2,$3,$4,$5)`,
		m.ID, m.TopicID, m.Content, m.Date, m.Author,
	)
	return mapErr(err)
}

func (r *topicsRepo) DeleteMessage(ctx context.Context, topicID, messageID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM messages WHERE id=$1 AND topic_id=$2`, messageID, topicID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// loadMessages fetches the messages of several topics in insertion order.
func (r *topicsRepo) loadMessages(ctx context.Context, topicIDs []string) (map[string][]models.Message, error) {
	out := make(map[string][]models.Message, len(topicIDs))
	if len(topicIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE topic_id = ANY($1) ORDER BY seq`, topicIDs)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.TopicID, &m.Content, &m.Date, &m.Author); err != nil {
			return nil, err
		}
		out[m.TopicID] = append(out[m.TopicID], m)
	}
	return out, rows.Err()
}

func scanTopic(row pgx.Row) (models.Topic, error) {
	var (
		t              models.Topic
		status, course string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Date, &status, &t.Author, &course); err != nil {
		return models.Topic{}, err
	}
	t.Status = models.TopicStatus(status)
	t.Course = models.Course(course)
	if !t.Course.Valid() {
		return models.Topic{}, fmt.Errorf("topic %s: %w: %q", t.ID, models.ErrUnknownCourse, course)
	}
	return t, nil
}
