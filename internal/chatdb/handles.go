package chatdb

import (
	"fmt"
	"strconv"
)

// SenderIDs finds the internal sender identifiers (handle ROWIDs) for
// an address. Matching is substring containment on handle.id, so one
// address can resolve to several identifiers (duplicate handle rows,
// numbers stored with and without a country code).
// Returns ErrNotFound if no identifier matches: a declared participant
// must exist in the chat DB.
func (c *DB) SenderIDs(address string) ([]string, error) {
	rows, err := c.db.Query(`
		SELECT ROWID
		FROM handle
		WHERE id LIKE ?
	`, "%"+address+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query handles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var rowid int64
		if err := rows.Scan(&rowid); err != nil {
			return nil, fmt.Errorf("failed to scan handle: %w", err)
		}
		ids = append(ids, strconv.FormatInt(rowid, 10))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating handles: %w", err)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("address %q %w", address, ErrNotFound)
	}
	return ids, nil
}

// AddressForSenderID looks up the address (phone number or email) the
// chat DB associates with a sender identifier. Used to label senders
// that were not declared as contacts.
func (c *DB) AddressForSenderID(senderID string) (string, error) {
	rowid, err := strconv.ParseInt(senderID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid sender id %q: %w", senderID, err)
	}

	var address string
	err = c.db.QueryRow(`
		SELECT id
		FROM handle
		WHERE ROWID = ?
	`, rowid).Scan(&address)
	if err != nil {
		return "", fmt.Errorf("sender id %q %w", senderID, ErrNotFound)
	}
	return address, nil
}
