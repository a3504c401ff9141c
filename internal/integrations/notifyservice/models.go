package notifyservice

// Идентификаторы шаблонов, известные NotifyService
// Рендеринг шаблонов - ответственность NotifyService, сюда уходят только данные
const (
	TemplateVisitConfirmed      = "visit_confirmed"
	TemplateVisitCancelledAdmin = "visit_cancelled_admin"
	TemplateVisitRescheduled    = "visit_rescheduled"
)

// Recipient получатель уведомления
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SendRequest запрос на отправку уведомления
type SendRequest struct {
	Template   string            `json:"template"`
	Recipients []Recipient       `json:"recipients"`
	Context    map[string]string `json:"context"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
