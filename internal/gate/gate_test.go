package gate_test

import (
	"path/filepath"
	"testing"

	"taskboard/internal/gate"
	"taskboard/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		requested gate.View
		auth      bool
		want      gate.Decision
	}{
		{gate.Root, false, gate.Decision{View: gate.Login, Redirected: true}},
		{gate.Root, true, gate.Decision{View: gate.Dashboard, Redirected: true}},
		{gate.Dashboard, false, gate.Decision{View: gate.Login, Redirected: true}},
		{gate.Dashboard, true, gate.Decision{View: gate.Dashboard}},
		{gate.Login, false, gate.Decision{View: gate.Login}},
		{gate.Login, true, gate.Decision{View: gate.Dashboard, Redirected: true}},
		{gate.Register, false, gate.Decision{View: gate.Register}},
		{gate.Register, true, gate.Decision{View: gate.Dashboard, Redirected: true}},
		{gate.Public, false, gate.Decision{View: gate.Public}},
		{gate.Public, true, gate.Decision{View: gate.Public}},
	}
	for _, tt := range tests {
		t.Run(tt.requested.String(), func(t *testing.T) {
			got := gate.Decide(tt.requested, tt.auth)
			if got != tt.want {
				t.Errorf("Decide(%v, %v) = %+v, want %+v", tt.requested, tt.auth, got, tt.want)
			}
		})
	}
}

func TestGate_FollowsSessionTransitions(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	sess := session.Open(store, nil)
	g := gate.New(sess)

	if d := g.Navigate(gate.Dashboard); d.View != gate.Login {
		t.Fatalf("expected redirect to login before login, got %v", d.View)
	}

	if err := sess.Login("u-1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if d := g.Navigate(gate.Dashboard); d.Redirected {
		t.Errorf("expected dashboard to render after login, got %+v", d)
	}
	if d := g.Navigate(gate.Login); d.View != gate.Dashboard {
		t.Errorf("expected login to redirect to dashboard, got %v", d.View)
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if d := g.Navigate(gate.Dashboard); d.View != gate.Login {
		t.Errorf("expected redirect to login after logout, got %v", d.View)
	}
}
