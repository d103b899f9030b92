package models

import "time"

type ChatMessage struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

type ChatUser struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ConversationSummary struct {
	ChatUser
	LastMessage   string     `json:"lastMessage"`
	LastTimestamp *time.Time `json:"lastTimestamp"`
}
