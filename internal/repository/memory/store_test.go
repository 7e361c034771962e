package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seedTopic(t *testing.T, s *Store, title string, course models.Course, at time.Time) models.Topic {
	t.Helper()
	tp := models.NewTopic(title, "first "+title, "ana", course, at)
	require.NoError(t, s.Topics().Create(context.Background(), &tp))
	return tp
}

func TestUsers_CreateAndLookup(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.Users().Create(ctx, "Ana", "ana@example.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = s.Users().Create(ctx, "Other", "ana@example.com", "hash")
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	got, err := s.Users().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = s.Users().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTopics_CreateAssignsIDs(t *testing.T) {
	s := New()
	tp := seedTopic(t, s, "Goroutines", models.CourseGolang, t0)

	require.NotEmpty(t, tp.ID)
	require.Len(t, tp.Messages, 1)
	assert.NotEmpty(t, tp.Messages[0].ID)
	assert.Equal(t, tp.ID, tp.Messages[0].TopicID)

	ok, err := s.Topics().ExistsByTitleAndMessage(context.Background(), "Goroutines", "first Goroutines")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Topics().ExistsByTitleAndMessage(context.Background(), "Goroutines", "other text")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTopics_GetByIDReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	tp := seedTopic(t, s, "Channels", models.CourseGolang, t0)

	got, err := s.Topics().GetByID(ctx, tp.ID)
	require.NoError(t, err)
	got.Messages[0].Content = "mutated"

	again, err := s.Topics().GetByID(ctx, tp.ID)
	require.NoError(t, err)
	assert.Equal(t, "first Channels", again.Messages[0].Content)

	_, err = s.Topics().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTopics_ListActive(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := seedTopic(t, s, "B topic", models.CourseGolang, t0)
	b := seedTopic(t, s, "A topic", models.CoursePython, t0.Add(time.Minute))
	c := seedTopic(t, s, "C topic", models.CourseGolang, t0.Add(2*time.Minute))

	c.Close()
	require.NoError(t, s.Topics().Update(ctx, c))

	page, err := s.Topics().ListActive(ctx, models.TopicFilter{}, models.DefaultPageRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, a.ID, page.Items[0].ID)
	assert.Equal(t, b.ID, page.Items[1].ID)

	byTitle := models.PageRequest{Size: 10, Sort: models.SortByTitle}
	page, err = s.Topics().ListActive(ctx, models.TopicFilter{}, byTitle)
	require.NoError(t, err)
	assert.Equal(t, b.ID, page.Items[0].ID)

	desc := models.PageRequest{Size: 1, Sort: models.SortByDate, Desc: true}
	page, err = s.Topics().ListActive(ctx, models.TopicFilter{}, desc)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, b.ID, page.Items[0].ID)

	golang := models.CourseGolang
	page, err = s.Topics().ListActive(ctx, models.TopicFilter{Course: &golang}, models.DefaultPageRequest())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, a.ID, page.Items[0].ID)

	beyond := models.PageRequest{Page: 5, Size: 10, Sort: models.SortByDate}
	page, err = s.Topics().ListActive(ctx, models.TopicFilter{}, beyond)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Empty(t, page.Items)

	// Page*Size wraps to a negative offset
	wrapped := models.PageRequest{Page: math.MaxInt / 5, Size: 10, Sort: models.SortByDate}
	require.Negative(t, wrapped.Offset())
	page, err = s.Topics().ListActive(ctx, models.TopicFilter{}, wrapped)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Empty(t, page.Items)
}

func TestTopics_Messages(t *testing.T) {
	s := New()
	ctx := context.Background()
	tp := seedTopic(t, s, "Maps", models.CourseGolang, t0)

	m := models.NewMessage("second", "luis", t0.Add(time.Minute))
	m.TopicID = tp.ID
	require.NoError(t, s.Topics().AddMessage(ctx, &m))
	assert.NotEmpty(t, m.ID)

	got, err := s.Topics().GetByID(ctx, tp.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "second", got.Messages[1].Content)

	require.NoError(t, s.Topics().DeleteMessage(ctx, tp.ID, tp.Messages[0].ID))
	assert.ErrorIs(t, s.Topics().DeleteMessage(ctx, tp.ID, tp.Messages[0].ID), repo.ErrNotFound)

	got, err = s.Topics().GetByID(ctx, tp.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, m.ID, got.Messages[0].ID)

	orphan := models.NewMessage("x", "y", t0)
	orphan.TopicID = "missing"
	assert.ErrorIs(t, s.Topics().AddMessage(ctx, &orphan), repo.ErrNotFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx repo.Tx) error {
		tp := models.NewTopic("Doomed", "body", "ana", models.CourseJava, t0)
		if err := tx.Topics.Create(ctx, &tp); err != nil {
			return err
		}
		id := tp.ID
		if err := tx.AuditLogs.Create(ctx, models.AuditLog{EntityType: "topic", EntityID: &id, Action: models.AuditTopicCreated}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	page, err := s.Topics().ListActive(ctx, models.TopicFilter{}, models.DefaultPageRequest())
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestWithTx_Commits(t *testing.T) {
	s := New()
	ctx := context.Background()
	var id string

	err := s.WithTx(ctx, func(tx repo.Tx) error {
		tp := models.NewTopic("Kept", "body", "ana", models.CourseJava, t0)
		if err := tx.Topics.Create(ctx, &tp); err != nil {
			return err
		}
		id = tp.ID
		return tx.AuditLogs.Create(ctx, models.AuditLog{EntityType: "topic", EntityID: &id, Action: models.AuditTopicCreated})
	})
	require.NoError(t, err)

	_, err = s.Topics().GetByID(ctx, id)
	require.NoError(t, err)

	logs, err := s.AuditLogs().ListByEntity(ctx, "topic", id)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditTopicCreated, logs[0].Action)
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Users().GetByID(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.WithTx(ctx, func(repo.Tx) error { return nil }), context.Canceled)
}
