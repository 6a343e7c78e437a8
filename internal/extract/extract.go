// Package extract turns raw chat.db rows into a normalized message
// table, substituting internal sender identifiers with display names.
package extract

import "github.com/tylerchilds/textvault/internal/chatdb"

// Message is one normalized row of a conversation's message table.
// All fields are string-typed so the table round-trips through CSV
// persistence without coercion surprises.
type Message struct {
	Sender string
	Text   string
	Time   string
	Type   string
}

// Table holds the messages of one conversation in timestamp order.
type Table []Message

// Conversation is a chat whose messages can be extracted: either a
// group chat or an individual (1:1) chat. The variant is chosen once
// at construction.
type Conversation interface {
	// Label returns the user-facing name of the conversation.
	Label() string

	// SetUserName sets the display name used to label the local
	// user's own messages. Defaults to "You".
	SetUserName(name string)

	// LoadMessages extracts the conversation's message table. If
	// since is non-empty, only messages with a strictly newer
	// timestamp are loaded.
	LoadMessages(db *chatdb.DB, since string) (Table, error)
}
