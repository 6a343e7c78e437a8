package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tylerchilds/textvault/internal/contact"
	"github.com/tylerchilds/textvault/internal/extract"
)

// ChatsFile is the on-disk declaration of the user's chats. Declaring
// chats in one file makes it easy to run extraction against several
// chats without editing code, and keeps configuration an explicit
// object instead of process-wide state.
type ChatsFile struct {
	UserName string     `yaml:"user_name,omitempty"`
	Chats    []ChatDecl `yaml:"chats"`
}

// ChatDecl declares one chat: a group (name + members) or an
// individual chat (contact only).
type ChatDecl struct {
	Name    string        `yaml:"name"`
	Members []ContactDecl `yaml:"members,omitempty"`
	Contact *ContactDecl  `yaml:"contact,omitempty"`
}

// ContactDecl declares one chat participant.
type ContactDecl struct {
	Name      string   `yaml:"name"`
	Addresses []string `yaml:"addresses"`
}

// LoadChats parses and validates the chats file, returning ready
// conversation descriptors keyed by chat name, plus the configured
// owner display name ("" means use the default).
func LoadChats(path string) (map[string]extract.Conversation, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read chats file: %w", err)
	}

	var file ChatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("failed to parse chats file %s: %w", path, err)
	}

	chats := make(map[string]extract.Conversation, len(file.Chats))
	for _, decl := range file.Chats {
		conv, err := decl.build()
		if err != nil {
			return nil, "", err
		}
		if _, exists := chats[decl.Name]; exists {
			return nil, "", fmt.Errorf("chat %q declared twice", decl.Name)
		}
		chats[decl.Name] = conv
	}

	return chats, file.UserName, nil
}

func (d ChatDecl) build() (extract.Conversation, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("chat declaration is missing a name")
	}

	switch {
	case d.Contact != nil && len(d.Members) > 0:
		return nil, fmt.Errorf("chat %q declares both members and a contact", d.Name)

	case d.Contact != nil:
		other, err := contact.New(d.Contact.Name, d.Contact.Addresses...)
		if err != nil {
			return nil, fmt.Errorf("chat %q: %w", d.Name, err)
		}
		return extract.NewIndividualChat(other), nil

	case len(d.Members) > 0:
		members := make([]contact.Contact, 0, len(d.Members))
		for _, m := range d.Members {
			member, err := contact.New(m.Name, m.Addresses...)
			if err != nil {
				return nil, fmt.Errorf("chat %q: %w", d.Name, err)
			}
			members = append(members, member)
		}
		return extract.NewGroupChat(d.Name, members...), nil

	default:
		return nil, fmt.Errorf("chat %q declares neither members nor a contact", d.Name)
	}
}
