package encouragements

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Krosebrook/lifesync-sub000/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidMessage       = errors.New("message is required")
	ErrMessageTooLong       = errors.New("message must be at most 500 characters")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrSelfEncouragement    = errors.New("cannot send an encouragement to yourself")
	ErrContentInappropriate = errors.New("message contains inappropriate content")
	ErrNotFound             = errors.New("encouragement not found")
)

type EncouragementService struct {
	db            *gorm.DB
	contentFilter *ContentFilterService
}

func NewEncouragementService(db *gorm.DB) *EncouragementService {
	return &EncouragementService{db: db, contentFilter: NewContentFilterService(defaultBlockedWords)}
}

func NewEncouragementServiceWithFilter(db *gorm.DB, filter *ContentFilterService) *EncouragementService {
	return &EncouragementService{db: db, contentFilter: filter}
}

func (s *EncouragementService) Send(fromUserID uuid.UUID, req SendEncouragementRequest) (*Encouragement, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}
	if len([]rune(message)) > 500 {
		return nil, ErrMessageTooLong
	}

	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		return nil, ErrRecipientNotFound
	}
	if toUserID == fromUserID {
		return nil, ErrSelfEncouragement
	}

	var recipient models.User
	err = s.db.First(&recipient, "id = ?", toUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		return nil, err
	}

	if flagged, _ := s.contentFilter.FilterContent(message); flagged {
		return nil, ErrContentInappropriate
	}

	encouragement := Encouragement{
		ID:         uuid.New(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    message,
	}
	if err := s.db.Create(&encouragement).Error; err != nil {
		return nil, fmt.Errorf("failed to send encouragement: %w", err)
	}
	return &encouragement, nil
}

func (s *EncouragementService) ListReceived(userID uuid.UUID, limit int) ([]Encouragement, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var received []Encouragement
	err := s.db.Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&received).Error
	if err != nil {
		return nil, err
	}
	return received, nil
}

func (s *EncouragementService) ListSent(userID uuid.UUID, limit int) ([]Encouragement, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var sent []Encouragement
	err := s.db.Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sent).Error
	if err != nil {
		return nil, err
	}
	return sent, nil
}

// MarkRead stamps a received encouragement; only the recipient can mark it.
func (s *EncouragementService) MarkRead(userID, encouragementID uuid.UUID) (*Encouragement, error) {
	var encouragement Encouragement
	err := s.db.Where("id = ? AND to_user_id = ?", encouragementID, userID).First(&encouragement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if encouragement.ReadAt == nil {
		now := time.Now().UTC()
		encouragement.ReadAt = &now
		if err := s.db.Save(&encouragement).Error; err != nil {
			return nil, err
		}
	}
	return &encouragement, nil
}

// SentCount feeds the encouragements_sent badge criteria.
func (s *EncouragementService) SentCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&Encouragement{}).Where("from_user_id = ?", userID).Count(&count).Error
	return count, err
}
