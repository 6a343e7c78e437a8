package chatdb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// RawMessage is one message row as stored in chat.db, before sender
// identifiers are substituted with display names. Numeric fields are
// carried as their decimal string representation so they round-trip
// through the persisted CSV unchanged.
type RawMessage struct {
	SenderID string // handle ROWID; "0" means the local user
	IsFromMe bool
	Text     string
	Time     string // raw chat.db date value
	Type     string // associated_message_type; "0" is a normal message
}

// Messages reads message rows for a set of chat identifiers, ordered
// by timestamp ascending. If since is non-empty, only rows with a
// strictly greater timestamp are returned (exclusive bound, so the
// boundary row is never re-fetched on an incremental run).
// Rows missing a required field are dropped as unusable.
func (c *DB) Messages(chatIDs []string, since string) ([]RawMessage, error) {
	if len(chatIDs) == 0 {
		return nil, fmt.Errorf("no chat ids given")
	}

	args := make([]any, 0, len(chatIDs)+1)
	for _, id := range chatIDs {
		rowid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", id, err)
		}
		args = append(args, rowid)
	}

	query := fmt.Sprintf(`
		SELECT m.handle_id, m.is_from_me, m.text, m.date, m.associated_message_type
		FROM message m
		INNER JOIN chat_message_join j ON m.ROWID = j.message_id
		WHERE j.chat_id IN (%s)
	`, placeholders(len(chatIDs)))

	if since != "" {
		watermark, err := strconv.ParseInt(since, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid since timestamp %q: %w", since, err)
		}
		query += " AND m.date > ?"
		args = append(args, watermark)
	}
	query += " ORDER BY m.date"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []RawMessage
	for rows.Next() {
		var (
			handleID sql.NullInt64
			isFromMe sql.NullInt64
			text     sql.NullString
			date     sql.NullInt64
			msgType  sql.NullInt64
		)
		if err := rows.Scan(&handleID, &isFromMe, &text, &date, &msgType); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		// Drop rows with missing required fields instead of failing
		if !handleID.Valid || !text.Valid || !date.Valid || !msgType.Valid {
			continue
		}

		messages = append(messages, RawMessage{
			SenderID: strconv.FormatInt(handleID.Int64, 10),
			IsFromMe: isFromMe.Valid && isFromMe.Int64 != 0,
			Text:     text.String,
			Time:     strconv.FormatInt(date.Int64, 10),
			Type:     strconv.FormatInt(msgType.Int64, 10),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
