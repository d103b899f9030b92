package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/middleware"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	chatws "github.com/TheOmegaWolf/fitness-tracker-backend/internal/websocket"
	"github.com/TheOmegaWolf/fitness-tracker-backend/pkg/utils"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type chatApplicationService interface {
	SearchUsers(ctx context.Context, query string, senderID int64) ([]models.ChatUser, error)
	Messages(ctx context.Context, senderID, receiverID int64) ([]models.ChatMessage, error)
	RecentConversations(ctx context.Context, userID int64) ([]models.ConversationSummary, error)
	Send(ctx context.Context, senderID, receiverID int64, message string) (*models.ChatMessage, error)
}

type ChatHandler struct {
	service   chatApplicationService
	hub       *chatws.Hub
	jwtSecret string
}

func NewChatHandler(service chatApplicationService, hub *chatws.Hub, jwtSecret string) *ChatHandler {
	return &ChatHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

type chatActionRequest struct {
	Action     string `json:"action"`
	Query      string `json:"query"`
	SenderID   flexID `json:"senderId"`
	ReceiverID flexID `json:"receiverId"`
	UserID     flexID `json:"userId"`
}

type sendMessageRequest struct {
	SenderID   flexID `json:"sender_id"`
	ReceiverID flexID `json:"receiver_id"`
	Message    string `json:"message"`
}

// HandleAction serves the chat panel's lookups, selected by the action field.
func (h *ChatHandler) HandleAction(c *fiber.Ctx) error {
	var req chatActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	switch req.Action {
	case "search":
		if req.SenderID <= 0 || strings.TrimSpace(req.Query) == "" {
			return badRequest(c, "query and senderId are required")
		}
		if ok, err := requireCaller(c, int64(req.SenderID)); !ok {
			return err
		}
		users, err := h.service.SearchUsers(c.UserContext(), req.Query, int64(req.SenderID))
		if err != nil {
			return mapChatError(c, err)
		}
		return c.JSON(fiber.Map{"users": users})

	case "getMessages":
		if req.SenderID <= 0 || req.ReceiverID <= 0 {
			return badRequest(c, "senderId and receiverId are required")
		}
		if ok, err := requireCaller(c, int64(req.SenderID)); !ok {
			return err
		}
		messages, err := h.service.Messages(c.UserContext(), int64(req.SenderID), int64(req.ReceiverID))
		if err != nil {
			return mapChatError(c, err)
		}
		return c.JSON(fiber.Map{"messages": messages})

	case "getRecentConversations":
		if req.UserID <= 0 {
			return badRequest(c, "userId is required")
		}
		if ok, err := requireCaller(c, int64(req.UserID)); !ok {
			return err
		}
		conversations, err := h.service.RecentConversations(c.UserContext(), int64(req.UserID))
		if err != nil {
			return mapChatError(c, err)
		}
		return c.JSON(fiber.Map{"conversations": conversations})

	default:
		return badRequest(c, "Invalid action")
	}
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.SenderID <= 0 || req.ReceiverID <= 0 || strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "sender_id, receiver_id and message are required")
	}
	if ok, err := requireCaller(c, int64(req.SenderID)); !ok {
		return err
	}

	message, err := h.service.Send(c.UserContext(), int64(req.SenderID), int64(req.ReceiverID), req.Message)
	if err != nil {
		return mapChatError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *ChatHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals(middleware.LocalUserID, claims.UserID)
	c.Locals(middleware.LocalRole, claims.Role)
	return c.Next()
}

func (h *ChatHandler) HandleWebSocket(conn *websocket.Conn) {
	userIDStr, _ := conn.Locals(middleware.LocalUserID).(string)
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		log.Warnf("chat websocket rejected, bad subject %q", userIDStr)
		_ = conn.Close()
		return
	}
	client := chatws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

// parseWSClaims prefers the token query parameter over the bearer header.
func (h *ChatHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		var err error
		if token, err = middleware.BearerToken(c); err != nil {
			return nil, err
		}
	}
	return utils.ValidateToken(token, h.jwtSecret)
}

func mapChatError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid request")
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return serverError(c, "Failed to process chat request", err)
	}
}
