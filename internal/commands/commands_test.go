package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/tasks"
	"taskpad/internal/testutil"
)

// fakeSource is a service.Source with canned tasks or an error.
type fakeSource struct {
	tasks []service.RemoteTask
	err   error
}

func (f *fakeSource) OpenTasks(context.Context) ([]service.RemoteTask, error) {
	return f.tasks, f.err
}

// newStore returns a store over a FakeKV with the given pending tasks.
func newStore(t *testing.T, texts ...string) (*tasks.Store, *testutil.FakeKV) {
	t.Helper()
	kv := testutil.NewFakeKV()
	store := tasks.New(kv, tasks.WithIDGenerator(testutil.SeqIDs()))
	for _, text := range texts {
		require.NoError(t, store.Add(text))
	}
	return store, kv
}

// runCommand is a helper to run a command against store.
func runCommand(t *testing.T, cmd commands.Command, store service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	return runWithRemote(t, cmd, store, nil, args, quiet)
}

func runWithRemote(t *testing.T, cmd commands.Command, store service.Service, remote service.Source, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	env := &commands.Env{
		Cfg:    &config.Config{Dir: t.TempDir(), Quiet: quiet},
		Store:  store,
		Remote: remote,
	}

	code = cmd.Run(context.Background(), env, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func texts(list []service.Task) []string {
	res := make([]string, 0, len(list))
	for _, task := range list {
		res = append(res, task.Text)
	}
	return res
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "taskpad "+commands.Version+"\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, commands.NewHelpCmd(commands.DefaultRegistry), nil, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "help", stdout)
}

func TestRegistry_AliasesResolve(t *testing.T) {
	for alias, name := range map[string]string{"ls": "list", "create": "add", "complete": "done", "remove": "rm", "tui": "ui"} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		require.True(t, ok, alias)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.ListCmd{}))
	assert.EqualError(t, r.Register(&commands.ListCmd{}), "command name already registered: list")
}

func TestListCommand_Full(t *testing.T) {
	store, _ := newStore(t, "Buy milk", "Walk dog", "Call mom")
	require.NoError(t, store.Complete(0))
	require.NoError(t, store.BeginEdit(1, "Call mom"))

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, store, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "list_full", stdout)
}

func TestListCommand_JSON(t *testing.T) {
	store, _ := newStore(t, "Buy milk", "Walk dog", "Call mom")
	require.NoError(t, store.Complete(0))
	require.NoError(t, store.BeginEdit(1, "Call mom"))

	cmd := &commands.ListCmd{}
	cmd.SetJSON(true)
	stdout, _, code := runCommand(t, cmd, store, nil, false)
	assert.Equal(t, exitcode.Success, code)
	testutil.GoldenString(t, "list_json", stdout)
}

func TestListCommand_PendingOnly(t *testing.T) {
	store, _ := newStore(t, "Buy milk", "Walk dog")
	require.NoError(t, store.Complete(0))

	cmd := &commands.ListCmd{}
	cmd.SetPendingOnly(true)
	stdout, _, code := runCommand(t, cmd, store, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "   1  Walk dog\n", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	store, _ := newStore(t)
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, store, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "no tasks found\n", stdout)
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	store, _ := newStore(t)
	stdout, _, code := runCommand(t, &commands.ListCmd{}, store, nil, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestListCommand_OnlyDone(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	require.NoError(t, store.Complete(0))

	stdout, _, code := runCommand(t, &commands.ListCmd{}, store, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n------------\ndone\n------------\n       1  Buy milk\n", stdout)
}

func TestListCommand_UnexpectedArg(t *testing.T) {
	store, _ := newStore(t)
	_, stderr, code := runCommand(t, &commands.ListCmd{}, store, []string{"work"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: work\n", stderr)
}

func TestAddCommand_Success(t *testing.T) {
	store, kv := newStore(t)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, []string{"Buy", "milk"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	assert.Equal(t, []string{"Buy milk"}, texts(store.State().Pending))
	pending, _ := kv.Value(tasks.PendingKey)
	assert.Equal(t, `[{"id":"t1","text":"Buy milk"}]`, pending)
}

func TestAddCommand_Quiet(t *testing.T) {
	store, _ := newStore(t)
	stdout, _, code := runCommand(t, &commands.AddCmd{}, store, []string{"Buy milk"}, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestAddCommand_NoText(t *testing.T) {
	store, kv := newStore(t)

	for _, args := range [][]string{nil, {"   "}} {
		stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, args, false)
		assert.Equal(t, exitcode.UserError, code)
		assert.Empty(t, stdout)
		assert.Equal(t, "error: task text required\n", stderr)
	}
	assert.Empty(t, kv.Writes(""))
}

func TestAddCommand_StorageErrorNotSurfaced(t *testing.T) {
	store, kv := newStore(t)
	kv.SetErr[tasks.PendingKey] = errors.New("disk full")

	stdout, _, code := runCommand(t, &commands.AddCmd{}, store, []string{"Buy milk"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, tasks.Modified, store.Status(tasks.PendingKey))
}

func TestDoneCommand_Success(t *testing.T) {
	store, _ := newStore(t, "Buy milk", "Walk dog")

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	st := store.State()
	assert.Equal(t, []string{"Walk dog"}, texts(st.Pending))
	assert.Equal(t, []string{"Buy milk"}, texts(st.Done))
}

func TestDoneCommand_NoRef(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task reference required\n", stderr)
}

func TestDoneCommand_InvalidRef(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"a1"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: invalid task reference: a1\n", stderr)
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	store, kv := newStore(t, "Buy milk")
	writes := len(kv.Writes(""))

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"5"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task number out of range: 5\n", stderr)
	assert.Len(t, kv.Writes(""), writes)
}

func TestDoneCommand_UnderEdit(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	require.NoError(t, store.BeginEdit(0, "Buy milk"))

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task is being edited: 1\n", stderr)
	assert.Len(t, store.State().Pending, 1)
}

func TestRmCommand_Success(t *testing.T) {
	store, kv := newStore(t, "Buy milk")

	stdout, _, code := runCommand(t, &commands.RmCmd{}, store, []string{"1"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)

	assert.Empty(t, store.State().Pending)
	pending, _ := kv.Value(tasks.PendingKey)
	assert.Equal(t, "[]", pending)
}

func TestRmCommand_NoRef(t *testing.T) {
	store, _ := newStore(t)
	_, stderr, code := runCommand(t, &commands.RmCmd{}, store, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task reference required\n", stderr)
}

func TestRmCommand_OutOfRange(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	_, stderr, code := runCommand(t, &commands.RmCmd{}, store, []string{"0"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task number out of range: 0\n", stderr)
	assert.Len(t, store.State().Pending, 1)
}

func TestClearCommand_Success(t *testing.T) {
	store, kv := newStore(t, "Buy milk")
	require.NoError(t, store.Complete(0))

	stdout, _, code := runCommand(t, &commands.ClearCmd{}, store, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)

	assert.Empty(t, store.State().Done)
	done, _ := kv.Value(tasks.DoneKey)
	assert.Equal(t, "[]", done)
}

func TestClearCommand_EmptyStillPersisted(t *testing.T) {
	store, kv := newStore(t)

	_, _, code := runCommand(t, &commands.ClearCmd{}, store, nil, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []testutil.Write{{Key: tasks.DoneKey, Value: "[]"}}, kv.Writes(""))
}

func TestClearCommand_UnexpectedArg(t *testing.T) {
	store, _ := newStore(t)
	_, stderr, code := runCommand(t, &commands.ClearCmd{}, store, []string{"all"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: all\n", stderr)
}

func TestEditCommand_Success(t *testing.T) {
	store, _ := newStore(t, "Buy milk", "Walk dog")

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, store, []string{"2", "Walk", "the", "dog"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	st := store.State()
	assert.Equal(t, service.Task{ID: "t2", Text: "Walk the dog"}, st.Pending[1])
	assert.False(t, st.Session.Open)
}

func TestEditCommand_NoText(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	_, stderr, code := runCommand(t, &commands.EditCmd{}, store, []string{"1", " "}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task text required\n", stderr)
	assert.Equal(t, []string{"Buy milk"}, texts(store.State().Pending))
}

func TestEditCommand_OutOfRange(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	_, stderr, code := runCommand(t, &commands.EditCmd{}, store, []string{"3", "x"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task number out of range: 3\n", stderr)
	assert.False(t, store.State().Session.Open)
}

func TestImportCommand_SkipsPending(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	src := &fakeSource{tasks: []service.RemoteTask{
		{ID: "r1", Title: "Buy milk"},
		{ID: "r2", Title: " Walk dog "},
		{ID: "r3", Title: ""},
	}}

	stdout, stderr, code := runWithRemote(t, &commands.ImportCmd{}, store, src, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "imported 1 of 3 tasks\n", stdout)
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, texts(store.State().Pending))
}

func TestImportCommand_All(t *testing.T) {
	store, _ := newStore(t, "Buy milk")
	src := &fakeSource{tasks: []service.RemoteTask{{ID: "r1", Title: "Buy milk"}}}

	cmd := &commands.ImportCmd{}
	cmd.SetAll(true)
	stdout, _, code := runWithRemote(t, cmd, store, src, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "imported 1 of 1 tasks\n", stdout)
	assert.Equal(t, []string{"Buy milk", "Buy milk"}, texts(store.State().Pending))
}

func TestImportCommand_DryRun(t *testing.T) {
	store, kv := newStore(t)
	src := &fakeSource{tasks: []service.RemoteTask{{ID: "r1", Title: "Buy milk"}, {ID: "r2", Title: "Walk dog"}}}

	cmd := &commands.ImportCmd{}
	cmd.SetDryRun(true)
	stdout, _, code := runWithRemote(t, cmd, store, src, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "+ Buy milk\n+ Walk dog\nwould import 2 of 2 tasks\n", stdout)
	assert.Empty(t, store.State().Pending)
	assert.Empty(t, kv.Writes(""))
}

func TestImportCommand_RemoteError(t *testing.T) {
	store, _ := newStore(t)
	src := &fakeSource{err: errors.New("request timed out")}

	_, stderr, code := runWithRemote(t, &commands.ImportCmd{}, store, src, nil, false)
	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: backend error: request timed out\n", stderr)
}

func TestServeCommand_UnexpectedArg(t *testing.T) {
	store, _ := newStore(t)
	_, stderr, code := runCommand(t, &commands.ServeCmd{}, store, []string{"now"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: now\n", stderr)
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	store, _ := newStore(t)
	cmd := &commands.ServeCmd{}
	cmd.SetListen("127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var outBuf, errBuf bytes.Buffer
	env := &commands.Env{Cfg: &config.Config{Dir: t.TempDir(), Quiet: true}, Store: store}
	code := cmd.Run(ctx, env, nil, &outBuf, &errBuf)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, errBuf.String())
}

func TestUICommand_UnexpectedArg(t *testing.T) {
	store, _ := newStore(t)
	_, stderr, code := runCommand(t, &commands.UICmd{}, store, []string{"x"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: x\n", stderr)
}
