package models

import (
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Valid is true only for the three statuses the tasks table accepts.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// User is a stored credential. Password holds the bcrypt hash.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// TaskInput carries the client-supplied fields of a create or update.
type TaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
}

// TaskResponse is the envelope every task endpoint answers with.
type TaskResponse struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	SingleTask *Task  `json:"singleTask"`
	TasksList  []Task `json:"tasksList"`
}

// NewTaskResponse builds an envelope with no payload.
func NewTaskResponse(status int, message string) TaskResponse {
	return TaskResponse{Status: status, Message: message, TasksList: []Task{}}
}

type LoginResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}
