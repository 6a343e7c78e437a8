// Package chat orchestrates one conversation's extraction: it owns the
// chat.db connection, the per-conversation data directory, and the
// incremental load protocol over the persisted message table.
package chat

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tylerchilds/textvault/internal/chatdb"
	"github.com/tylerchilds/textvault/internal/extract"
	"github.com/tylerchilds/textvault/internal/rules"
	"github.com/tylerchilds/textvault/internal/store"
)

// Session holds the loaded messages of one conversation. After Open
// succeeds, Messages returns the rows that are new since the previous
// run (or everything on a first run); the full table, old and new, is
// persisted to the conversation's CSV either way.
type Session struct {
	conv     extract.Conversation
	db       *chatdb.DB
	dataDir  string
	userName string
	messages extract.Table
}

// Open connects to chat.db at dbPath, loads the conversation's
// messages incrementally, and persists the combined table under
// dataRoot. The connection stays open for the session's lifetime and
// is released by Close on every path, including Open failures.
func Open(conv extract.Conversation, dataRoot, dbPath, userName string) (*Session, error) {
	if userName == "" {
		userName = "You"
	}
	conv.SetUserName(userName)

	dataDir := filepath.Join(dataRoot, store.DirName(conv.Label()))
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := chatdb.Open(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Session{conv: conv, db: db, dataDir: dataDir, userName: userName}
	if err := s.loadMessages(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// loadMessages runs the incremental protocol: read the persisted
// table, fetch only rows newer than its last timestamp, persist the
// combined table, and keep just the new rows in memory. With no
// persisted table this degenerates to a full fetch.
func (s *Session) loadMessages() error {
	csvPath := filepath.Join(s.dataDir, store.FileName)

	prior, watermark, err := store.Load(csvPath)
	if err != nil {
		return err
	}

	newMessages, err := s.conv.LoadMessages(s.db, watermark)
	if err != nil {
		return err
	}

	if err := store.Persist(csvPath, store.Merge(prior, newMessages)); err != nil {
		return err
	}

	log.Debug().
		Str("chat", s.conv.Label()).
		Int("prior", len(prior)).
		Int("new", len(newMessages)).
		Msg("loaded messages")

	s.messages = newMessages
	return nil
}

// ApplyRules runs the rules in order against the in-memory table.
func (s *Session) ApplyRules(ruleList ...rules.Rule) {
	s.messages = rules.Apply(s.messages, ruleList...)
}

// Messages returns the current in-memory message table.
func (s *Session) Messages() extract.Table { return s.messages }

// UserName returns the display name labeling the local user's rows.
func (s *Session) UserName() string { return s.userName }

// DataDir returns the conversation's data directory.
func (s *Session) DataDir() string { return s.dataDir }

// Close releases the chat.db connection. Safe on a nil session.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
