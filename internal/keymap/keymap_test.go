package keymap

import (
	"testing"

	"github.com/andyrewlee/gitz/internal/config"
)

func TestDefaultBindings(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := PrimaryKey(km.Quit); got != "q" {
		t.Fatalf("PrimaryKey(Quit) = %q", got)
	}
	keys := km.Quit.Keys()
	for _, want := range []string{"ctrl+q", "ctrl+w"} {
		found := false
		for _, k := range keys {
			if k == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("quit binding missing %s: %v", want, keys)
		}
	}
	if PrimaryKey(km.Filter) != "/" || PrimaryKey(km.Search) != "ctrl+f" {
		t.Fatalf("filter/search keys = %q %q", PrimaryKey(km.Filter), PrimaryKey(km.Search))
	}
}

func TestOverrides(t *testing.T) {
	km := New(config.KeyMapConfig{Bindings: map[string][]string{
		"copy_hash": {"c", "ctrl+c"},
	}})
	if got := km.CopyHash.Help().Key; got != "c/ctrl+c" {
		t.Fatalf("help key = %q", got)
	}
	if got := PrimaryKey(km.CopyHash); got != "c" {
		t.Fatalf("PrimaryKey() = %q", got)
	}
}

func TestActionInfosHaveBindings(t *testing.T) {
	km := New(config.KeyMapConfig{})
	seen := map[Action]bool{}
	for _, info := range ActionInfos() {
		if seen[info.Action] {
			t.Fatalf("duplicate action %s", info.Action)
		}
		seen[info.Action] = true
		if len(km.Binding(info.Action).Keys()) == 0 {
			t.Fatalf("action %s has no keys", info.Action)
		}
	}
	if len(seen) != len(defaults) {
		t.Fatalf("help lists %d actions, defaults define %d", len(seen), len(defaults))
	}
}

func TestPairHint(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := PairHint(km.Up, km.Down); got != "k/j" {
		t.Fatalf("PairHint() = %q", got)
	}
}
