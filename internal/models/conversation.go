package models

import "time"

// Conversation — диалог между клиентом и администратором.
// Создаётся неявно при первом сообщении клиента.
type Conversation struct {
	ID          int       // Идентификатор диалога
	ClientUID   string    // Клиент, которому принадлежит диалог
	CreatedAt   time.Time // Дата создания
	LastMessage time.Time // Время последнего сообщения
}

// Message — одно сообщение в диалоге.
type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	SenderUID      string    `json:"sender_uid"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
}

// DummyMessage используется для приёма текста сообщения из JSON-запроса.
type DummyMessage struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}
