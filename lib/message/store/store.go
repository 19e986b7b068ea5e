package messagestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ops-portal-backend/models"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Message) (string, error)
	GetByID(messageID string) (rec *dbmodels.Message, err error)
	GetThread(companyID string) (list []dbmodels.Message, err error)
	MarkThreadRead(companyID string, receiverType models.PartyType) error
	CountUnread(companyID string, receiverType models.PartyType) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Message) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(messageID string) (rec *dbmodels.Message, err error) {
	err = i.db.Model(dbmodels.Message{}).
		Where("id = ?", messageID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// GetThread переписка админа и компании в обе стороны
func (i impl) GetThread(companyID string) (list []dbmodels.Message, err error) {
	err = i.db.Model(dbmodels.Message{}).
		Where("(sender_type = ? AND sender_id = ?) OR (receiver_type = ? AND receiver_id = ?)",
			models.CompanyParty, companyID, models.CompanyParty, companyID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// MarkThreadRead подтверждение прочтения входящих, явная операция
// вместо побочного эффекта выборки
func (i impl) MarkThreadRead(companyID string, receiverType models.PartyType) error {
	tx := i.db.
		Model(&dbmodels.Message{}).
		Where("is_read = false")
	if receiverType == models.AdminParty {
		tx = tx.Where("receiver_type = ? AND sender_type = ? AND sender_id = ?",
			models.AdminParty, models.CompanyParty, companyID)
	} else {
		tx = tx.Where("receiver_type = ? AND receiver_id = ?", models.CompanyParty, companyID)
	}
	return tx.
		Update("is_read", true).
		Error
}

func (i impl) CountUnread(companyID string, receiverType models.PartyType) (int64, error) {
	var count int64
	tx := i.db.Model(dbmodels.Message{}).
		Where("is_read = false")
	if receiverType == models.AdminParty {
		tx = tx.Where("receiver_type = ? AND sender_type = ? AND sender_id = ?",
			models.AdminParty, models.CompanyParty, companyID)
	} else {
		tx = tx.Where("receiver_type = ? AND receiver_id = ?", models.CompanyParty, companyID)
	}
	err := tx.
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
