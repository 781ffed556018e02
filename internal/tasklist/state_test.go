package tasklist_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"taskboard/internal/service"
	"taskboard/internal/session"
	"taskboard/internal/tasklist"
	"taskboard/internal/testutil"
)

// user is a fixed logged-in user.
type user string

func (u user) CurrentUser() (string, bool) { return string(u), u != "" }

// recorder collects notifications.
type recorder struct {
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

var errBackend = &service.Error{Kind: service.ErrNetwork}

func newState(t *testing.T, svc *testutil.FakeService) (*tasklist.State, *recorder) {
	t.Helper()
	rec := &recorder{}
	return tasklist.New(svc, user("u-1"), rec), rec
}

func loaded(t *testing.T, svc *testutil.FakeService) (*tasklist.State, *recorder) {
	t.Helper()
	st, rec := newState(t, svc)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return st, rec
}

func titles(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestLoad_ReplacesState(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	svc.AddTask("u-2", "t2", "Not mine")
	svc.AddTask("u-1", "t3", "Pay bills")

	st, _ := loaded(t, svc)

	want := []string{"Buy milk", "Pay bills"}
	if got := titles(st.Tasks()); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	for _, task := range st.Tasks() {
		if task.OwnerUserID != "u-1" {
			t.Errorf("task %s belongs to %s", task.ID, task.OwnerUserID)
		}
	}
}

func TestLoad_FailureLeavesEmpty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	st, rec := loaded(t, svc)

	svc.ListTasksErr = errBackend
	err := st.Load(context.Background())
	if !errors.Is(err, service.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("expected empty state, got %d tasks", st.Len())
	}
	if len(rec.errors) != 1 || rec.errors[0] != tasklist.MsgLoadFailed {
		t.Errorf("expected load notification, got %v", rec.errors)
	}
}

func TestLoad_CollapsesDuplicateIDs(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "First")
	svc.AddTask("u-1", "t1", "Duplicate")
	svc.AddTask("u-1", "t2", "Second")

	st, _ := loaded(t, svc)

	want := []string{"First", "Second"}
	if got := titles(st.Tasks()); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoad_NotLoggedIn(t *testing.T) {
	svc := testutil.NewFakeService()
	st := tasklist.New(svc, user(""), nil)

	if err := st.Load(context.Background()); !errors.Is(err, tasklist.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
	if svc.Calls("ListTasks") != 0 {
		t.Error("no request should be made without a user")
	}
}

func TestAdd_AppendsServerTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	svc.QueueIDs("srv-9")
	st, rec := loaded(t, svc)
	before := st.Len()

	task, err := st.Add(context.Background(), "Pay bills", service.PriorityHigh, "2026-12-01")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if st.Len() != before+1 {
		t.Errorf("expected length %d, got %d", before+1, st.Len())
	}
	if task.ID != "srv-9" {
		t.Errorf("expected server id srv-9, got %q", task.ID)
	}
	last := st.Tasks()[st.Len()-1]
	if last.ID != "srv-9" || last.Priority != service.PriorityHigh || last.DueDate != "2026-12-01" {
		t.Errorf("unexpected appended task %+v", last)
	}
	if len(rec.successes) != 1 || rec.successes[0] != tasklist.MsgAdded {
		t.Errorf("expected add notification, got %v", rec.successes)
	}
}

func TestAdd_DefaultsPriority(t *testing.T) {
	svc := testutil.NewFakeService()
	st, _ := loaded(t, svc)

	task, err := st.Add(context.Background(), "Water plants", "", "")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if task.Priority != service.PriorityMedium {
		t.Errorf("expected Medium, got %q", task.Priority)
	}
}

func TestAdd_RejectsBlankTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	st, _ := loaded(t, svc)

	_, err := st.Add(context.Background(), "   \t", service.PriorityLow, "")
	if !errors.Is(err, tasklist.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if svc.Calls("CreateTask") != 0 {
		t.Error("blank title must not reach the server")
	}
}

func TestAdd_FailureLeavesStateUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	st, rec := loaded(t, svc)
	before := st.Tasks()

	svc.CreateTaskErr = errBackend
	if _, err := st.Add(context.Background(), "Pay bills", "", ""); err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(before, st.Tasks()) {
		t.Error("state changed after failed add")
	}
	if len(rec.errors) != 1 || rec.errors[0] != tasklist.MsgAddFailed {
		t.Errorf("expected add failure notification, got %v", rec.errors)
	}
}

func TestAdd_ExistingIDReplacesEntry(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	svc.QueueIDs("t1")
	st, _ := loaded(t, svc)

	if _, err := st.Add(context.Background(), "Buy oat milk", "", ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	tasks := st.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy oat milk" {
		t.Errorf("expected a single replaced entry, got %+v", tasks)
	}
}

func TestToggle_FlipsOnlyTarget(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	svc.AddCompletedTask("u-1", "t2", "Pay bills")
	svc.AddTask("u-1", "t3", "Call mom")
	st, rec := loaded(t, svc)
	before := st.Tasks()

	updated, err := st.Toggle(context.Background(), "t1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected t1 to be completed")
	}

	after := st.Tasks()
	for i := range after {
		want := before[i]
		if want.ID == "t1" {
			want.Completed = !want.Completed
		}
		if after[i] != want {
			t.Errorf("entry %d: expected %+v, got %+v", i, want, after[i])
		}
	}
	if stored, _ := svc.Stored("t1"); !stored.Completed {
		t.Error("expected server copy to be completed")
	}
	if len(rec.successes) != 1 || rec.successes[0] != tasklist.MsgCompleted {
		t.Errorf("expected completion notification, got %v", rec.successes)
	}

	// Reopening flips back without a celebration.
	if _, err := st.Toggle(context.Background(), "t2"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if task, _ := st.Find("t2"); task.Completed {
		t.Error("expected t2 to be pending")
	}
	if len(rec.successes) != 1 {
		t.Errorf("reopening should not notify, got %v", rec.successes)
	}
}

func TestToggle_FailureLeavesStateUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	st, rec := loaded(t, svc)

	svc.UpdateTaskErr = errBackend
	if _, err := st.Toggle(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}
	if task, _ := st.Find("t1"); task.Completed {
		t.Error("completion flipped despite failure")
	}
	if len(rec.errors) != 1 || rec.errors[0] != tasklist.MsgUpdateFailed {
		t.Errorf("expected update failure notification, got %v", rec.errors)
	}
}

func TestToggle_UnknownID(t *testing.T) {
	svc := testutil.NewFakeService()
	st, _ := loaded(t, svc)

	if _, err := st.Toggle(context.Background(), "nope"); !errors.Is(err, tasklist.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	if svc.Calls("UpdateTask") != 0 {
		t.Error("unknown id must not reach the server")
	}
}

func TestDelete_RemovesEntry(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	svc.AddTask("u-1", "t2", "Pay bills")
	st, rec := loaded(t, svc)
	before := st.Len()

	if err := st.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if st.Len() != before-1 {
		t.Errorf("expected length %d, got %d", before-1, st.Len())
	}
	if _, ok := st.Find("t1"); ok {
		t.Error("t1 should be gone")
	}
	if len(rec.successes) != 1 || rec.successes[0] != tasklist.MsgDeleted {
		t.Errorf("expected delete notification, got %v", rec.successes)
	}
}

func TestDelete_FailureLeavesStateUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	st, rec := loaded(t, svc)

	svc.DeleteTaskErr = errBackend
	if err := st.Delete(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}
	if st.Len() != 1 {
		t.Errorf("expected task to remain, got %d tasks", st.Len())
	}
	if len(rec.errors) != 1 || rec.errors[0] != tasklist.MsgDeleteFailed {
		t.Errorf("expected delete failure notification, got %v", rec.errors)
	}
}

func TestRemaining(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	svc.AddCompletedTask("u-1", "t2", "Pay bills")
	svc.AddTask("u-1", "t3", "Call mom")
	st, _ := loaded(t, svc)

	if got := st.Remaining(); got != 2 {
		t.Errorf("expected 2 remaining, got %d", got)
	}
}

func TestIDsStayUnique(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "a")
	svc.AddTask("u-1", "t2", "b")
	st, _ := loaded(t, svc)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := st.Add(ctx, "new", "", ""); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	if _, err := st.Toggle(ctx, "t2"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := st.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	seen := map[string]bool{}
	for _, task := range st.Tasks() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestResetsOnSessionTransition(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	sess := session.Open(session.NewStore(filepath.Join(t.TempDir(), "session.yaml")), nil)
	if err := sess.Login("u-1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	st := tasklist.New(svc, sess, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", st.Len())
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("expected reset after logout, got %d tasks", st.Len())
	}
}

func TestClose_StopsFollowingSession(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u-1", "t1", "Buy milk")
	sess := session.Open(session.NewStore(filepath.Join(t.TempDir(), "session.yaml")), nil)
	if err := sess.Login("u-1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	st := tasklist.New(svc, sess, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	st.Close()
	st.Close()

	if err := sess.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if st.Len() != 1 {
		t.Errorf("closed list was reset, got %d tasks", st.Len())
	}
}
