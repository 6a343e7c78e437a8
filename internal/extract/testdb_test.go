package extract

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tylerchilds/textvault/internal/chatdb"
)

// openTestDB builds a chat.db fixture and opens it. Alice texts from
// two handle rows (1 and 4) plus an email handle (3); handle 50 is a
// sender nobody declared as a contact.
func openTestDB(t *testing.T) *chatdb.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "chat.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to create test chat.db: %v", err)
	}
	defer db.Close()

	schema := `
		CREATE TABLE handle (ROWID INTEGER PRIMARY KEY, id TEXT NOT NULL);
		CREATE TABLE chat (ROWID INTEGER PRIMARY KEY, display_name TEXT, chat_identifier TEXT);
		CREATE TABLE message (
			ROWID INTEGER PRIMARY KEY,
			handle_id INTEGER,
			is_from_me INTEGER,
			text TEXT,
			date INTEGER,
			associated_message_type INTEGER
		);
		CREATE TABLE chat_message_join (chat_id INTEGER, message_id INTEGER);

		INSERT INTO handle VALUES
			(1, '+11234567890'),
			(2, '+11000000000'),
			(3, 'alice@email.com'),
			(4, '+11234567890'),
			(50, 'unknown@email.com');

		INSERT INTO chat VALUES
			(1, 'name', 'chat10000000'),
			(2, 'name2', 'chat20000000'),
			(3, '', '+11234567890'),
			(4, 'name', 'chat40000000'),
			(5, '', '+11000000000'),
			(6, '', 'alice@email.com');

		INSERT INTO message VALUES
			(101, 0, 1, 'hello alice and bob', 0, 0),
			(102, 1, 0, 'hello user and bob', 10, 0),
			(103, 2, 0, 'hello user and alice', 20, 0),
			(104, 4, 0, 'Loved “hello user and alice”', 30, 2000),
			(111, 0, 1, 'hello a and b', 1, 0),
			(112, 1, 0, 'hello u and b', 11, 0),
			(113, 2, 0, 'hello u and a', 21, 0),
			(114, 4, 0, 'Loved “hello u and a”', 31, 2000),
			(115, 50, 0, 'hello -anonymous', 41, 0),
			(116, 50, 0, 'hello again', 51, 0),
			(121, 0, 1, 'hello alice', 2, 0),
			(122, 1, 0, 'hello user', 12, 0),
			(123, 1, 0, 'Loved “hello alice”', 22, 2000),
			(124, 3, 0, 'hello from my email', 32, 0),
			(131, 0, 1, 'hello bob', 3, 0),
			(132, 2, 0, 'hello user', 13, 0);

		INSERT INTO chat_message_join VALUES
			(1, 101), (1, 102), (4, 103), (4, 104),
			(2, 111), (2, 112), (2, 113), (2, 114), (2, 115), (2, 116),
			(3, 121), (3, 122), (3, 123), (6, 124),
			(5, 131), (5, 132);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to build fixture: %v", err)
	}

	cdb, err := chatdb.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test chat.db: %v", err)
	}
	t.Cleanup(func() { cdb.Close() })
	return cdb
}
