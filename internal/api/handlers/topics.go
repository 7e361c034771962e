package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/forohub/internal/api/httpx"
	"github.com/baharkarakas/forohub/internal/api/validate"
	"github.com/baharkarakas/forohub/internal/services"
)

const (
	msgTopicClosed    = "Tópico cerrado exitosamente"
	msgMessageRemoved = "Mensaje eliminado exitosamente"
	embeddedTopics    = "topicos"
)

type TopicHandler struct {
	topics *services.TopicService
}

func NewTopicHandler(topics *services.TopicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

// Create answers 201 with a Location header and echoes the submitted topic.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.NewTopicInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeBadBody(w, err)
		return
	}
	t, err := h.topics.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.Course = string(t.Course)
	w.Header().Set("Location", "/topicos/"+t.ID)
	httpx.WriteJSON(w, http.StatusCreated, in)
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := httpx.ParsePageRequest(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.topics.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.NewPagedModel(r, embeddedTopics, page))
}

func (h *TopicHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if f := validate.Required("curso", q.Get("curso")); f != nil {
		writeError(w, r, validate.Errs{*f})
		return
	}
	p, err := httpx.ParsePageRequest(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.topics.SearchByCourse(r.Context(), q.Get("curso"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.NewPagedModel(r, embeddedTopics, page))
}

func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.topics.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

// Update accepts an empty body, which only marks the topic UPDATED.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateTopicInput
	if err := httpx.DecodeJSON(r, &in); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeBadBody(w, err)
		return
	}
	m, err := h.topics.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *TopicHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var in services.NewMessageInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeBadBody(w, err)
		return
	}
	m, err := h.topics.AppendMessage(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *TopicHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.topics.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, msgTopicClosed)
}

func (h *TopicHandler) RemoveMessage(w http.ResponseWriter, r *http.Request) {
	err := h.topics.RemoveMessage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "messageID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, msgMessageRemoved)
}

func (h *TopicHandler) History(w http.ResponseWriter, r *http.Request) {
	logs, err := h.topics.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, logs)
}
