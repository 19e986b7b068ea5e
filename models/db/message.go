package dbmodels

import (
	"ops-portal-backend/models"
	messageapimodels "ops-portal-backend/models/api/message"
)

type Message struct {
	BaseModel
	SenderType   models.PartyType `gorm:"type:varchar(20);not null"`
	SenderID     string           `gorm:"index"`
	ReceiverType models.PartyType `gorm:"type:varchar(20);not null"`
	ReceiverID   string           `gorm:"index"`
	Text         string           `gorm:"type:text;not null"`
	IsRead       bool             `gorm:"default:false"`
}

func (r Message) ToModel(senderName string) messageapimodels.MessageView {
	return messageapimodels.MessageView{
		ID:           r.ID,
		SenderType:   r.SenderType,
		SenderID:     r.SenderID,
		SenderName:   senderName,
		ReceiverType: r.ReceiverType,
		ReceiverID:   r.ReceiverID,
		Text:         r.Text,
		IsRead:       r.IsRead,
		CreatedAt:    r.CreatedAt,
	}
}
