package services

import (
	"context"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	log "github.com/sirupsen/logrus"
)

type chatUserSearcher interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SearchByName(ctx context.Context, query string, excludeID int64) ([]models.ChatUser, error)
}

type chatMessageStore interface {
	Create(ctx context.Context, senderID, receiverID int64, message string) (*models.ChatMessage, error)
	ListBetween(ctx context.Context, userA, userB int64) ([]models.ChatMessage, error)
	ListConversations(ctx context.Context, userID int64) ([]models.ConversationSummary, error)
}

// MessageBroadcaster fans a persisted message out to connected realtime clients.
type MessageBroadcaster interface {
	BroadcastMessage(message *models.ChatMessage)
}

type ChatService struct {
	userRepo    chatUserSearcher
	messageRepo chatMessageStore
	broadcaster MessageBroadcaster
	metrics     *metrics.Manager
}

func NewChatService(
	userRepo chatUserSearcher,
	messageRepo chatMessageStore,
	broadcaster MessageBroadcaster,
	metricsManager *metrics.Manager,
) *ChatService {
	return &ChatService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		broadcaster: broadcaster,
		metrics:     metricsManager,
	}
}

func (s *ChatService) SearchUsers(ctx context.Context, query string, senderID int64) ([]models.ChatUser, error) {
	query = strings.TrimSpace(query)
	if query == "" || senderID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.SearchByName(ctx, query, senderID)
}

func (s *ChatService) Messages(ctx context.Context, senderID, receiverID int64) ([]models.ChatMessage, error) {
	if senderID <= 0 || receiverID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.messageRepo.ListBetween(ctx, senderID, receiverID)
}

func (s *ChatService) RecentConversations(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.messageRepo.ListConversations(ctx, userID)
}

// Send persists the message first so every client receives the stored record with
// its server timestamp, then hands it to the broadcaster.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID int64, message string) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if senderID <= 0 || receiverID <= 0 || message == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	saved, err := s.messageRepo.Create(ctx, senderID, receiverID, message)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.CounterChatMessages.Inc()
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(saved)
	} else {
		log.Warnf("chat message %d stored without a broadcaster", saved.ID)
	}
	return saved, nil
}
