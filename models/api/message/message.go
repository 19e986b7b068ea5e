package messageapimodels

import (
	"time"

	"github.com/pkg/errors"

	"ops-portal-backend/models"
)

type MessageView struct {
	ID           string           `json:"id"`
	SenderType   models.PartyType `json:"sender_type"`
	SenderID     string           `json:"sender_id"`
	SenderName   string           `json:"sender_name"` // название компании либо "Admin"
	ReceiverType models.PartyType `json:"receiver_type"`
	ReceiverID   string           `json:"receiver_id"`
	Text         string           `json:"text"`
	IsRead       bool             `json:"is_read"`
	CreatedAt    time.Time        `json:"created_at"`
}

type SendMessage struct {
	CompanyID string `json:"company_id"` // для отправки от админа
	Text      string `json:"text"`
}

func (r SendMessage) Validate() error {
	if r.Text == "" {
		return errors.New("не указан текст сообщения")
	}
	return nil
}
