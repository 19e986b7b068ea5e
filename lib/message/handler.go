package messagehandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ops-portal-backend/config"
	"ops-portal-backend/db"
	companystore "ops-portal-backend/lib/company/store"
	messagestore "ops-portal-backend/lib/message/store"
	"ops-portal-backend/lib/smtp"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	connectionhub "ops-portal-backend/lib/ws/hub/connection-hub"
	"ops-portal-backend/models"
	messageapimodels "ops-portal-backend/models/api/message"
	dbmodels "ops-portal-backend/models/db"
	wsmodels "ops-portal-backend/models/ws"
)

const adminSenderName = "Admin"

type Provider interface {
	SendFromAdmin(adminID, companyID, text string) (id string, err error)
	SendFromCompany(companyID, text string) (id string, err error)
	GetThread(companyID string) (list []messageapimodels.MessageView, err error)
	Acknowledge(companyID string, receiverType models.PartyType) error
	GetUnreadCount(companyID string, receiverType models.PartyType) (int64, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:        messagestore.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
		hub:          connectionhub.Instance,
		smtpClient:   smtp.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"companyStore", instance.companyStore,
		"hub", instance.hub,
		"smtpClient", instance.smtpClient,
	)
	Instance = instance
}

type impl struct {
	store        messagestore.Provider
	companyStore companystore.Provider
	hub          connectionhub.Provider
	smtpClient   smtp.Provider
}

func (i impl) SendFromAdmin(adminID, companyID, text string) (id string, err error) {
	logger := log.WithField("company_id", companyID)
	company, err := i.companyStore.GetByID(companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", errors.New("компания не найдена")
	}
	id, err = i.store.Create(dbmodels.Message{
		SenderType:   models.AdminParty,
		SenderID:     adminID,
		ReceiverType: models.CompanyParty,
		ReceiverID:   companyID,
		Text:         text,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return "", err
	}
	i.hub.SendMessage(wsmodels.ServerMessage{
		ToUserID: companyID,
		Time:     time.Now().Format("02.01.2006 15:04:05"),
		Code:     string(wsmodels.NewMessageEvent),
		Msg:      text,
	})
	if company.Email != "" {
		err = i.smtpClient.SendEMail(adminSenderName, company.Email, text, "Новое сообщение от администратора")
		if err != nil {
			logger.WithError(err).Error("ошибка отправки почтового уведомления")
		}
	}
	logger.
		WithField("rec_id", id).
		Info("отправлено сообщение компании")
	return id, nil
}

// SendFromCompany сообщение администратору, дублируется письмом
// на служебный почтовый ящик
func (i impl) SendFromCompany(companyID, text string) (id string, err error) {
	logger := log.WithField("company_id", companyID)
	company, err := i.companyStore.GetByID(companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", errors.New("компания не найдена")
	}
	id, err = i.store.Create(dbmodels.Message{
		SenderType:   models.CompanyParty,
		SenderID:     companyID,
		ReceiverType: models.AdminParty,
		Text:         text,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return "", err
	}
	err = i.smtpClient.SendEMail(company.Name, config.Conf.Smtp.User, text, "Новое сообщение от компании")
	if err != nil {
		logger.WithError(err).Error("ошибка отправки почтового уведомления")
	}
	logger.
		WithField("rec_id", id).
		Info("отправлено сообщение администратору")
	return id, nil
}

func (i impl) GetThread(companyID string) (list []messageapimodels.MessageView, err error) {
	company, err := i.companyStore.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("компания не найдена")
	}
	recList, err := i.store.GetThread(companyID)
	if err != nil {
		return nil, err
	}
	list = make([]messageapimodels.MessageView, 0, len(recList))
	for _, rec := range recList {
		senderName := adminSenderName
		if rec.SenderType == models.CompanyParty {
			senderName = company.Name
		}
		list = append(list, rec.ToModel(senderName))
	}
	return list, nil
}

// Acknowledge явное подтверждение прочтения входящих сообщений треда
func (i impl) Acknowledge(companyID string, receiverType models.PartyType) error {
	return i.store.MarkThreadRead(companyID, receiverType)
}

func (i impl) GetUnreadCount(companyID string, receiverType models.PartyType) (int64, error) {
	return i.store.CountUnread(companyID, receiverType)
}
