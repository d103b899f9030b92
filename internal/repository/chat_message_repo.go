package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
)

type ChatMessageRepository struct {
	db DBTX
}

func NewChatMessageRepository(db DBTX) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

func (r *ChatMessageRepository) Create(ctx context.Context, senderID, receiverID int64, message string) (*models.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (sender_id, receiver_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, sender_id, receiver_id, message, sent_at
	`
	var msg models.ChatMessage
	err := r.db.QueryRow(ctx, query, senderID, receiverID, message).Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.Message,
		&msg.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListBetween returns the conversation in both directions, oldest first.
func (r *ChatMessageRepository) ListBetween(ctx context.Context, userA, userB int64) ([]models.ChatMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sender_id, receiver_id, message, sent_at
		FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at ASC, id ASC
	`, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Message, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ListConversations returns each partner of userID with the latest message exchanged,
// newest conversation first.
func (r *ChatMessageRepository) ListConversations(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	rows, err := r.db.Query(ctx, `
		WITH partner_messages AS (
			SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS partner_id,
				message, sent_at, id
			FROM chat_messages
			WHERE sender_id = $1 OR receiver_id = $1
		), latest AS (
			SELECT DISTINCT ON (partner_id) partner_id, message, sent_at
			FROM partner_messages
			ORDER BY partner_id, sent_at DESC, id DESC
		)
		SELECT u.id, u.name, u.email, l.message, l.sent_at
		FROM latest l
		JOIN users u ON u.id = l.partner_id
		ORDER BY l.sent_at DESC, u.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var (
			s      models.ConversationSummary
			sentAt time.Time
		)
		if err := rows.Scan(&s.UserID, &s.Name, &s.Email, &s.LastMessage, &sentAt); err != nil {
			return nil, err
		}
		s.LastTimestamp = &sentAt
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
