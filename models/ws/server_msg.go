package wsmodels

type EventCode string

const (
	NewMessageEvent EventCode = "NEW_MESSAGE"
	NewTaskEvent    EventCode = "NEW_TASK"
)

type ServerMessage struct {
	ToUserID string `json:"-"`
	Time     string `json:"time"` // время события
	Code     string `json:"code"` // код события
	Msg      string `json:"msg"`  // текст события
}
