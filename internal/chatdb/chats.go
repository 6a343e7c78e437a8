package chatdb

import (
	"database/sql"
	"fmt"
	"strconv"
)

// GroupChatIDs finds the internal chat identifiers (chat ROWIDs) for a
// group chat by exact display name. A group chat that was deleted and
// re-created keeps its name but gets a new ROWID, so one name can map
// to several identifiers.
// Returns ErrNotFound if the name matches zero rows.
func (c *DB) GroupChatIDs(displayName string) ([]string, error) {
	rows, err := c.db.Query(`
		SELECT ROWID
		FROM chat
		WHERE display_name = ?
	`, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	ids, err := scanChatIDs(rows)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("chat with name %q %w", displayName, ErrNotFound)
	}
	return ids, nil
}

// IndividualChatIDs finds the internal chat identifiers for a 1:1 chat
// by the other person's addresses. Each address is containment-matched
// against chat.chat_identifier; identifiers from all addresses are
// concatenated. Duplicates are tolerated because the message query
// uses IN, an idempotent membership test.
// Returns ErrNotFound only if every address matches zero rows.
func (c *DB) IndividualChatIDs(addresses []string) ([]string, error) {
	var ids []string
	for _, address := range addresses {
		rows, err := c.db.Query(`
			SELECT ROWID
			FROM chat
			WHERE chat_identifier LIKE ?
		`, "%"+address+"%")
		if err != nil {
			return nil, fmt.Errorf("failed to query chats: %w", err)
		}

		chatIDs, err := scanChatIDs(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		ids = append(ids, chatIDs...)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("chat with addresses %v %w", addresses, ErrNotFound)
	}
	return ids, nil
}

func scanChatIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var rowid int64
		if err := rows.Scan(&rowid); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		ids = append(ids, strconv.FormatInt(rowid, 10))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chats: %w", err)
	}
	return ids, nil
}
