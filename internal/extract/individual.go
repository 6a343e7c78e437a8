package extract

import (
	"github.com/tylerchilds/textvault/internal/chatdb"
	"github.com/tylerchilds/textvault/internal/contact"
)

// IndividualChat is a 1:1 chat between the local user and one other
// person. Sender attribution needs no identifier resolution: every raw
// row carries an is_from_me flag.
type IndividualChat struct {
	OtherPerson contact.Contact

	// UserName labels messages sent by the local user.
	UserName string
}

// NewIndividualChat creates an individual chat descriptor with the
// default owner label.
func NewIndividualChat(otherPerson contact.Contact) *IndividualChat {
	return &IndividualChat{OtherPerson: otherPerson, UserName: "You"}
}

// Label returns the other person's name.
func (i *IndividualChat) Label() string { return i.OtherPerson.Name }

// SetUserName sets the label for the local user's own messages.
func (i *IndividualChat) SetUserName(name string) { i.UserName = name }

// LoadMessages extracts this chat's messages. Chat identifiers are
// located by the other person's addresses, so messages they sent from
// any of their addresses are included.
func (i *IndividualChat) LoadMessages(db *chatdb.DB, since string) (Table, error) {
	chatIDs, err := db.IndividualChatIDs(i.OtherPerson.Addresses)
	if err != nil {
		return nil, err
	}

	raw, err := db.Messages(chatIDs, since)
	if err != nil {
		return nil, err
	}

	table := make(Table, 0, len(raw))
	for _, msg := range raw {
		sender := i.OtherPerson.Name
		if msg.IsFromMe {
			sender = i.UserName
		}
		table = append(table, Message{
			Sender: sender,
			Text:   msg.Text,
			Time:   msg.Time,
			Type:   msg.Type,
		})
	}

	return table, nil
}
