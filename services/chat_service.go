// services/chat_service.go
package services

import (
	"time"

	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatService struct {
	db  *gorm.DB
	hub *ChatHub
}

func NewChatService(db *gorm.DB, hub *ChatHub) *ChatService {
	return &ChatService{db: db, hub: hub}
}

type SendMessageRequest struct {
	Text     string `json:"text"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// SendMessage appends one message and broadcasts it to any open sockets.
// Delivery past the insert is fire-and-forget: the sender's screen shows the
// message once its own subscription half confirms it.
func (s *ChatService) SendMessage(senderID, recipientID uint, req SendMessageRequest) (*models.Message, error) {
	msg := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        req.Text,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileType:    req.FileType,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastMessage(msg)
	}
	return msg, nil
}

// ListSent and ListReceived are the two subscription halves. They deliver
// independently and in no guaranteed relative order; only the merge step
// imposes a total order.

func (s *ChatService) ListSent(userID, peerID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("sender_id = ? AND recipient_id = ?", userID, peerID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (s *ChatService) ListReceived(userID, peerID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("sender_id = ? AND recipient_id = ?", peerID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// History runs both halves through the merger and returns the grouped feed.
func (s *ChatService) History(userID, peerID uint) ([]ChatEntry, error) {
	sent, err := s.ListSent(userID, peerID)
	if err != nil {
		return nil, err
	}
	received, err := s.ListReceived(userID, peerID)
	if err != nil {
		return nil, err
	}
	list := MergeMessages(nil, sent, true)
	list = MergeMessages(list, received, false)
	return GroupByDate(list), nil
}
