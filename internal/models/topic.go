package models

import "time"

type TopicStatus string

const (
	TopicOpen    TopicStatus = "OPEN"
	TopicUpdated TopicStatus = "UPDATED"
	TopicClosed  TopicStatus = "CLOSED"
)

// Topic owns its messages; Messages is kept in insertion order.
type Topic struct {
	ID       string      `json:"id"`
	Title    string      `json:"titulo"`
	Date     time.Time   `json:"fecha"`
	Status   TopicStatus `json:"status"`
	Author   string      `json:"autor"`
	Course   Course      `json:"curso"`
	Messages []Message   `json:"mensajes"`
}

// Message points back at its topic by id only.
type Message struct {
	ID      string    `json:"id"`
	TopicID string    `json:"-"`
	Content string    `json:"contenido"`
	Date    time.Time `json:"fecha"`
	Author  string    `json:"autor"`
}

// TopicSummary is the listing projection of a topic.
type TopicSummary struct {
	ID       string      `json:"id"`
	Title    string      `json:"titulo"`
	Messages []Message   `json:"mensajes"`
	Status   TopicStatus `json:"status"`
	Course   Course      `json:"curso"`
}

// NewTopic builds an OPEN topic seeded with its first message.
func NewTopic(title, content, author string, course Course, now time.Time) Topic {
	t := Topic{
		Title:    title,
		Date:     now,
		Status:   TopicOpen,
		Author:   author,
		Course:   course,
		Messages: make([]Message, 0, 1),
	}
	t.AddMessage(NewMessage(content, author, now))
	return t
}

func NewMessage(content, author string, now time.Time) Message {
	return Message{Content: content, Author: author, Date: now}
}

func (t *Topic) AddMessage(m Message) {
	m.TopicID = t.ID
	t.Messages = append(t.Messages, m)
}

func (t *Topic) MarkUpdated(now time.Time) {
	t.Status = TopicUpdated
	t.Date = now
}

func (t *Topic) Close() { t.Status = TopicClosed }

func (t Topic) IsClosed() bool { return t.Status == TopicClosed }

// LastMessage returns the most recently appended message, by position.
func (t Topic) LastMessage() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// RemoveMessage detaches a message from the collection, preserving order.
func (t *Topic) RemoveMessage(id string) bool {
	for i, m := range t.Messages {
		if m.ID == id {
			t.Messages = append(t.Messages[:i], t.Messages[i+1:]...)
			return true
		}
	}
	return false
}

func (t Topic) Summary() TopicSummary {
	msgs := t.Messages
	if msgs == nil {
		msgs = []Message{}
	}
	return TopicSummary{ID: t.ID, Title: t.Title, Messages: msgs, Status: t.Status, Course: t.Course}
}
