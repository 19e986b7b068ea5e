package messagehandler

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"

	"ops-portal-backend/config"
	companystore "ops-portal-backend/lib/company/store"
	"ops-portal-backend/models"
	dbmodels "ops-portal-backend/models/db"
	wsmodels "ops-portal-backend/models/ws"
)

type fakeMessageStore struct {
	messages  []dbmodels.Message
	readCalls []models.PartyType
}

func (f *fakeMessageStore) Create(rec dbmodels.Message) (string, error) {
	f.messages = append(f.messages, rec)
	return "m1", nil
}

func (f *fakeMessageStore) GetByID(messageID string) (*dbmodels.Message, error) {
	return nil, nil
}

func (f *fakeMessageStore) GetThread(companyID string) ([]dbmodels.Message, error) {
	return f.messages, nil
}

func (f *fakeMessageStore) MarkThreadRead(companyID string, receiverType models.PartyType) error {
	f.readCalls = append(f.readCalls, receiverType)
	return nil
}

func (f *fakeMessageStore) CountUnread(companyID string, receiverType models.PartyType) (int64, error) {
	return int64(len(f.messages)), nil
}

type fakeCompanyStore struct {
	companystore.Provider
	companies map[string]dbmodels.Company
}

func (f fakeCompanyStore) GetByID(companyID string) (*dbmodels.Company, error) {
	rec, ok := f.companies[companyID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeHub struct {
	sent []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn) {}
func (f *fakeHub) DeleteClient(userID string)                    {}
func (f *fakeHub) SendClose(userID string)                       {}
func (f *fakeHub) IsConnected(userID string) bool                { return false }
func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.sent = append(f.sent, msg)
}

type fakeSmtp struct {
	to      string
	from    string
	subject string
}

func (f *fakeSmtp) SendEMail(from, to, message, subject string) error {
	f.from = from
	f.to = to
	f.subject = subject
	return nil
}

func newTestHandler() (impl, *fakeMessageStore, *fakeHub, *fakeSmtp) {
	store := &fakeMessageStore{}
	hub := &fakeHub{}
	smtpClient := &fakeSmtp{}
	handler := impl{
		store: store,
		companyStore: fakeCompanyStore{companies: map[string]dbmodels.Company{
			"c1": {Name: "Ромашка"},
		}},
		hub:        hub,
		smtpClient: smtpClient,
	}
	return handler, store, hub, smtpClient
}

func TestSendFromAdmin(t *testing.T) {
	handler, store, hub, _ := newTestHandler()

	_, err := handler.SendFromAdmin("a1", "c1", "проверьте отчеты")
	require.NoError(t, err)
	require.Len(t, store.messages, 1)
	require.Equal(t, models.AdminParty, store.messages[0].SenderType)
	require.Equal(t, models.CompanyParty, store.messages[0].ReceiverType)
	require.Equal(t, "c1", store.messages[0].ReceiverID)
	// компания получает пуш о новом сообщении
	require.Len(t, hub.sent, 1)
	require.Equal(t, "c1", hub.sent[0].ToUserID)
	require.Equal(t, string(wsmodels.NewMessageEvent), hub.sent[0].Code)

	_, err = handler.SendFromAdmin("a1", "unknown", "проверьте отчеты")
	require.EqualError(t, err, "компания не найдена")
}

func TestSendFromCompany(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Smtp.User = "ops@portal.ru"
	handler, store, _, smtpClient := newTestHandler()

	_, err := handler.SendFromCompany("c1", "нужен доступ")
	require.NoError(t, err)
	require.Len(t, store.messages, 1)
	require.Equal(t, models.CompanyParty, store.messages[0].SenderType)
	require.Equal(t, models.AdminParty, store.messages[0].ReceiverType)
	// письмо уходит на служебный ящик
	require.Equal(t, "ops@portal.ru", smtpClient.to)
	require.Equal(t, "Ромашка", smtpClient.from)
}

func TestThreadSenderNames(t *testing.T) {
	handler, store, _, _ := newTestHandler()
	store.messages = []dbmodels.Message{
		{SenderType: models.AdminParty, ReceiverType: models.CompanyParty, ReceiverID: "c1", Text: "вопрос"},
		{SenderType: models.CompanyParty, SenderID: "c1", ReceiverType: models.AdminParty, Text: "ответ"},
	}

	list, err := handler.GetThread("c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, adminSenderName, list[0].SenderName)
	require.Equal(t, "Ромашка", list[1].SenderName)
}

func TestAcknowledgeDirection(t *testing.T) {
	handler, store, _, _ := newTestHandler()

	require.NoError(t, handler.Acknowledge("c1", models.AdminParty))
	require.NoError(t, handler.Acknowledge("c1", models.CompanyParty))
	require.Equal(t, []models.PartyType{models.AdminParty, models.CompanyParty}, store.readCalls)
}
