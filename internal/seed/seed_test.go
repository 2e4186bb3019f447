package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/taskboard/internal/seed"
	"github.com/nhle/taskboard/tests/testutil"
)

const sample = `
[[lists]]
title = "To Do"

[[lists.cards]]
title = "Write docs"
description = "README"
due = "2024-01-12"
checklist = [{ text = "outline" }, { text = "draft", done = true }]

[[lists.cards]]
title = "Release"
due = "2024-01-20 09:30"

[[lists]]
title = "Done"

[[lists.cards]]
title = "Kickoff"
done = true
`

func TestParse(t *testing.T) {
	f, err := seed.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Lists) != 2 {
		t.Fatalf("lists: got %d, want 2", len(f.Lists))
	}
	cards := f.Lists[0].Cards
	if len(cards) != 2 || cards[0].Title != "Write docs" {
		t.Fatalf("cards: got %+v", cards)
	}
	if len(cards[0].Checklist) != 2 || !cards[0].Checklist[1].Done {
		t.Errorf("checklist: got %+v", cards[0].Checklist)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad toml", "[[lists]\n", "decoding seed"},
		{"missing list title", "[[lists]]\ntitle = \"\"\n", "lists[0]: title is required"},
		{"missing card title", "[[lists]]\ntitle = \"A\"\n[[lists.cards]]\ntitle = \" \"\n", "cards[0]: title is required"},
		{"bad due date", "[[lists]]\ntitle = \"A\"\n[[lists.cards]]\ntitle = \"x\"\ndue = \"soon\"\n", "parsing due date"},
		{"blank item", "[[lists]]\ntitle = \"A\"\n[[lists.cards]]\ntitle = \"x\"\nchecklist = [{ text = \"\" }]\n", "checklist[0]: text is required"},
		{"unknown key", "[[lists]]\ntitle = \"A\"\ncolour = \"red\"\n", "colour"},
		{"wrong type", "[[lists]]\ntitle = \"A\"\n[[lists.cards]]\ntitle = \"x\"\ndone = \"yes\"\n", "/lists/0/cards/0/done"},
		{"card without title key", "[[lists]]\ntitle = \"A\"\n[[lists.cards]]\ndue = \"2024-01-12\"\n", "/lists/0/cards/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestImport(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := seed.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sum, err := seed.Import(ctx, s, f)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if sum.Lists != 2 || sum.Cards != 3 || sum.Items != 2 {
		t.Errorf("summary: got %+v", sum)
	}

	b, err := s.LoadBoard(ctx)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if len(b.Lists) != 2 || b.Lists[0].Title != "To Do" || b.Lists[1].Title != "Done" {
		t.Fatalf("lists: got %+v", b.Lists)
	}
	release := b.Lists[0].Cards[1]
	if release.DueDate != "2024-01-20" {
		t.Errorf("due date not normalized: got %q", release.DueDate)
	}
	if !b.Lists[1].Cards[0].Done {
		t.Error("done flag lost")
	}
	docs := b.Lists[0].Cards[0]
	if len(docs.Checklist) != 2 || docs.Checklist[0].Text != "outline" {
		t.Errorf("checklist: got %+v", docs.Checklist)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := seed.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error")
	}
}
