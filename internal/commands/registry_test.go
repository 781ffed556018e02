package commands

import (
	"testing"

	"taskboard/internal/gate"
)

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&AddCmd{}); err != nil {
		t.Fatalf("register add: %v", err)
	}
	if err := r.Register(&aliasClash{}); err == nil {
		t.Error("expected duplicate alias error")
	}
	if _, ok := r.Find("clash"); ok {
		t.Error("rejected command must not be partially registered")
	}
}

func TestRegistry_FindByAlias(t *testing.T) {
	for alias, name := range map[string]string{
		"create": "add",
		"done":   "toggle",
		"delete": "rm",
		"ls":     "list",
		"signup": "register",
	} {
		cmd, ok := DefaultRegistry.Find(alias)
		if !ok || cmd.Name() != name {
			t.Errorf("Find(%q): expected %s, got %v", alias, name, cmd)
		}
	}
}

func TestRegistry_AllSortedUnique(t *testing.T) {
	all := DefaultRegistry.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name() >= all[i].Name() {
			t.Errorf("not sorted or duplicated: %s before %s", all[i-1].Name(), all[i].Name())
		}
	}
}

func TestRegistry_DashboardScreen(t *testing.T) {
	cmd, ok := DefaultRegistry.Screen(gate.Dashboard)
	if !ok || cmd.Name() != "list" {
		t.Errorf("expected list as dashboard screen, got %v", cmd)
	}
	if _, ok := DefaultRegistry.Screen(gate.Register); ok {
		t.Error("no screen expected for register")
	}
}

type aliasClash struct{ VersionCmd }

func (c *aliasClash) Name() string      { return "clash" }
func (c *aliasClash) Aliases() []string { return []string{"create"} }
