package tui_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/platform/tui"
	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHistoryEmpty(t *testing.T) {
	m := tui.NewHistoryModel(openStore(t), 100, 40)
	if !strings.Contains(m.View(), "No matches recorded yet.") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
}

func TestHistoryShowsBattlesOfFirstMatch(t *testing.T) {
	store := openStore(t)
	match := &storage.Match{Scenario: "classic", Seed: 9}
	if err := store.BeginMatch(match); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveBattle(storage.Battle{
		MatchID: match.ID, Turn: 3, Kind: "siege", Location: "Omega",
		Attacker: "Human", Defender: "Opponent", AttackerWon: true,
	}); err != nil {
		t.Fatal(err)
	}

	view := tui.NewHistoryModel(store, 100, 40).View()
	for _, want := range []string{"MATCH HISTORY", "classic", "1 battles", "Omega"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
