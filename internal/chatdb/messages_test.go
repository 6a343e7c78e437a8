package chatdb

import (
	"reflect"
	"testing"
)

func TestMessages_OrderedAcrossChatIDs(t *testing.T) {
	db := openTestChatDB(t)

	msgs, err := db.Messages([]string{"1", "4"}, "")
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}

	want := []RawMessage{
		{SenderID: "0", IsFromMe: true, Text: "hello alice and bob", Time: "0", Type: "0"},
		{SenderID: "1", Text: "hello user and bob", Time: "10", Type: "0"},
		{SenderID: "2", Text: "hello user and alice", Time: "20", Type: "0"},
		{SenderID: "4", Text: "Loved “hello user and alice”", Time: "30", Type: "2000"},
	}
	if !reflect.DeepEqual(msgs, want) {
		t.Errorf("Messages = %v, want %v", msgs, want)
	}
}

func TestMessages_DropsRowsWithMissingFields(t *testing.T) {
	db := openTestChatDB(t)

	// Chat 1 holds a row with NULL text (date 60); it must not appear
	msgs, err := db.Messages([]string{"1"}, "")
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}
	for _, m := range msgs {
		if m.Time == "60" {
			t.Errorf("row with missing text was not dropped: %+v", m)
		}
	}
}

func TestMessages_SinceBoundIsExclusive(t *testing.T) {
	db := openTestChatDB(t)

	msgs, err := db.Messages([]string{"1", "4"}, "10")
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}

	// The boundary row (date 10) must never be re-returned
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(msgs), msgs)
	}
	if msgs[0].Time != "20" || msgs[1].Time != "30" {
		t.Errorf("unexpected times: %q, %q", msgs[0].Time, msgs[1].Time)
	}
}

func TestMessages_DuplicateChatIDsTolerated(t *testing.T) {
	db := openTestChatDB(t)

	once, err := db.Messages([]string{"2"}, "")
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}
	twice, err := db.Messages([]string{"2", "2"}, "")
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("duplicate chat IDs changed the result: %v vs %v", once, twice)
	}
}

func TestMessages_NoChatIDs(t *testing.T) {
	db := openTestChatDB(t)

	if _, err := db.Messages(nil, ""); err == nil {
		t.Fatal("expected error for empty chat ID list")
	}
}

func TestMessages_BadSince(t *testing.T) {
	db := openTestChatDB(t)

	if _, err := db.Messages([]string{"1"}, "not-a-timestamp"); err == nil {
		t.Fatal("expected error for non-numeric since value")
	}
}
