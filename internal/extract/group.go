package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tylerchilds/textvault/internal/chatdb"
	"github.com/tylerchilds/textvault/internal/contact"
)

// GroupChat is a named chat with several declared members.
type GroupChat struct {
	// Name must match the group's name exactly as it appears in the
	// Messages app.
	Name string

	// Members of the chat. The local user doesn't need to be listed,
	// but can be if their messages come from multiple addresses.
	Members []contact.Contact

	// UserName labels messages sent by the local user.
	UserName string

	// unknownAddresses maps sender IDs seen in this chat but not
	// covered by Members to their resolved address. Scoped to one
	// LoadMessages run; avoids repeating the lookup for every message
	// from the same sender.
	unknownAddresses map[string]string
}

// NewGroupChat creates a group chat descriptor with the default owner
// label.
func NewGroupChat(name string, members ...contact.Contact) *GroupChat {
	return &GroupChat{Name: name, Members: members, UserName: "You"}
}

// Label returns the group's display name.
func (g *GroupChat) Label() string { return g.Name }

// SetUserName sets the label for the local user's own messages.
func (g *GroupChat) SetUserName(name string) { g.UserName = name }

// LoadMessages extracts this group chat's messages, replacing sender
// identifiers with member names. Messages from senders that were not
// declared as members are labeled with their raw address and reported
// in one aggregated warning; they never fail the extraction.
func (g *GroupChat) LoadMessages(db *chatdb.DB, since string) (Table, error) {
	g.unknownAddresses = make(map[string]string)

	// Sender ID 0 is always the local user. A later member overwrites
	// an earlier one if their identifier sets collide.
	senderNames := map[string]string{"0": g.UserName}
	for _, member := range g.Members {
		for _, address := range member.Addresses {
			senderIDs, err := db.SenderIDs(address)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", member.Name, err)
			}
			for _, id := range senderIDs {
				senderNames[id] = member.Name
			}
		}
	}

	chatIDs, err := db.GroupChatIDs(g.Name)
	if err != nil {
		return nil, err
	}

	raw, err := db.Messages(chatIDs, since)
	if err != nil {
		return nil, err
	}

	table := make(Table, 0, len(raw))
	for _, msg := range raw {
		sender, ok := senderNames[msg.SenderID]
		if !ok {
			sender, err = g.addressForUnknownSender(db, msg.SenderID)
			if err != nil {
				return nil, err
			}
		}
		table = append(table, Message{
			Sender: sender,
			Text:   msg.Text,
			Time:   msg.Time,
			Type:   msg.Type,
		})
	}

	if len(g.unknownAddresses) > 0 {
		addresses := make([]string, 0, len(g.unknownAddresses))
		for _, address := range g.unknownAddresses {
			addresses = append(addresses, address)
		}
		sort.Strings(addresses)
		log.Warn().
			Str("chat", g.Name).
			Int("count", len(addresses)).
			Str("addresses", strings.Join(addresses, ", ")).
			Msg("found messages from unknown addresses; make sure all chat members are added as contacts")
	}

	return table, nil
}

// addressForUnknownSender labels a sender that has no declared member
// with the address the chat DB stores for it, memoized per run.
func (g *GroupChat) addressForUnknownSender(db *chatdb.DB, senderID string) (string, error) {
	if address, ok := g.unknownAddresses[senderID]; ok {
		return address, nil
	}

	address, err := db.AddressForSenderID(senderID)
	if err != nil {
		return "", err
	}
	g.unknownAddresses[senderID] = address
	return address, nil
}

// UnknownAddresses returns the sender-ID to address mapping collected
// during the most recent LoadMessages run.
func (g *GroupChat) UnknownAddresses() map[string]string {
	return g.unknownAddresses
}
