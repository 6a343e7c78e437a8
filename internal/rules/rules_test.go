package rules

import (
	"reflect"
	"testing"

	"github.com/tylerchilds/textvault/internal/extract"
)

func msg(text, msgType string) extract.Message {
	return extract.Message{Sender: "Alice", Text: text, Time: "0", Type: msgType}
}

func TestRemoveNonAlphanumeric(t *testing.T) {
	table := extract.Table{
		msg("hello", "0"),
		msg("!!!", "0"),
		msg("…", "0"),
		msg("a!", "0"),
		msg("_", "0"), // underscore counts as a word character
		msg("", "0"),
	}

	got := Apply(table, RemoveNonAlphanumeric())
	want := extract.Table{msg("hello", "0"), msg("a!", "0"), msg("_", "0")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestRemoveNonStandard(t *testing.T) {
	table := extract.Table{
		msg("hello", "0"),
		msg("Loved “hello”", "2000"),
		msg("sticker", "1000"),
		msg("bye", "0"),
	}

	got := Apply(table, RemoveNonStandard())
	want := extract.Table{msg("hello", "0"), msg("bye", "0")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestRemoveLinks_StripsLinkKeepsRest(t *testing.T) {
	table := extract.Table{msg("look at this link: https://x.com/y nice", "0")}

	got := Apply(table, RemoveLinks())
	if got[0].Text != "look at this link: " {
		t.Errorf("Text = %q, want %q", got[0].Text, "look at this link: ")
	}
}

func TestRemoveLinks_NoSchemeUntouched(t *testing.T) {
	table := extract.Table{msg("github.com", "0")}

	got := Apply(table, RemoveLinks())
	if got[0].Text != "github.com" {
		t.Errorf("Text = %q, want it unchanged", got[0].Text)
	}
}

func TestRemoveLinks_KeepsEmptiedRow(t *testing.T) {
	table := extract.Table{msg("https://example.com/only-a-link", "0")}

	got := Apply(table, RemoveLinks())
	if len(got) != 1 {
		t.Fatalf("row was dropped, want it kept with empty text")
	}
	if got[0].Text != "" {
		t.Errorf("Text = %q, want empty", got[0].Text)
	}
}

func TestRemoveLinks_ThenNonAlphanumericDropsLinkOnlyRows(t *testing.T) {
	table := extract.Table{
		msg("https://example.com/only-a-link", "0"),
		msg("check https://example.com out", "0"),
	}

	got := Apply(table, RemoveLinks(), RemoveNonAlphanumeric())
	// The trailing text falls inside the link's greedy character class
	if len(got) != 1 || got[0].Text != "check " {
		t.Errorf("Apply = %v, want one row with text %q", got, "check ")
	}
}

func TestApply_SequentialEqualsSeparateCalls(t *testing.T) {
	table := extract.Table{
		msg("hello", "0"),
		msg("Loved “hello”", "2000"),
		msg("!!!", "0"),
		msg("see https://x.com/y", "0"),
	}

	chained := Apply(table, RemoveNonStandard(), RemoveLinks(), RemoveNonAlphanumeric())

	stepwise := Apply(table, RemoveNonStandard())
	stepwise = Apply(stepwise, RemoveLinks())
	stepwise = Apply(stepwise, RemoveNonAlphanumeric())

	if !reflect.DeepEqual(chained, stepwise) {
		t.Errorf("chained %v != stepwise %v", chained, stepwise)
	}
}

func TestApply_NoRulesIsIdentity(t *testing.T) {
	table := extract.Table{msg("hello", "0")}
	if got := Apply(table); !reflect.DeepEqual(got, table) {
		t.Errorf("Apply with no rules changed the table: %v", got)
	}
}
