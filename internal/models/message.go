package models

import "time"

// MessageTypeFile marks a message whose content is a file id in decimal text.
const MessageTypeFile = "file"

// Message is immutable once sent and outlives the group it was posted to.
type Message struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GroupID        int64     `json:"groupId" gorm:"not null;index:idx_messages_group_type"`
	SenderUsername string    `json:"senderUsername" gorm:"type:varchar(100)"`
	Content        string    `json:"content" gorm:"type:text"`
	Type           string    `json:"type" gorm:"type:varchar(30);index:idx_messages_group_type"`
	Timestamp      time.Time `json:"timestamp" gorm:"not null"`
}

func (Message) TableName() string {
	return "messages"
}
