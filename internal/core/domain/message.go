package domain

import "time"

type Message struct {
	ID        int64     `db:"id" json:"id"`
	DealID    int64     `db:"deal_id" json:"deal_id"`
	Sender    string    `db:"sender" json:"sender"`
	Text      string    `db:"text" json:"text"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	IsRead    int       `db:"is_read" json:"is_read"`
}

type NewMessage struct {
	DealID int64
	Sender string
	Text   string
}

func (m *Message) Read() bool {
	return m.IsRead != 0
}
