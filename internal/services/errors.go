package services

import "errors"

var (
	ErrDuplicateTopic     = errors.New("a topic with the same title and message already exists")
	ErrInvalidCourse      = errors.New("invalid course")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrNoMessages         = errors.New("topic has no messages")
	ErrTopicClosed        = errors.New("topic is closed")
	ErrInvalidCredentials = errors.New("authentication failed")
	ErrEmailTaken         = errors.New("email already registered")
)
