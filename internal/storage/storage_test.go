package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) KV{
		"memory": func(t *testing.T) KV { return NewMemory() },
		"file": func(t *testing.T) KV {
			kv, err := NewFile(filepath.Join(t.TempDir(), "data"))
			require.NoError(t, err)
			return kv
		},
		"sqlite": func(t *testing.T) KV {
			kv, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			return kv
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			defer kv.Close()

			_, ok, err := kv.Get("todoTaskList")
			require.NoError(t, err)
			assert.False(t, ok, "unwritten key should be absent")

			require.NoError(t, kv.Set("todoTaskList", `[{"text":"a"}]`))
			v, ok, err := kv.Get("todoTaskList")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"text":"a"}]`, v)

			require.NoError(t, kv.Set("todoTaskList", `[]`))
			v, ok, err = kv.Get("todoTaskList")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v, "last write wins")

			_, ok, err = kv.Get("doneTaskList")
			require.NoError(t, err)
			assert.False(t, ok, "keys are independent")
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	kv := NewMemory()
	for _, key := range []string{"", "  ", "a/b", `a\b`, "..", "."} {
		_, _, err := kv.Get(key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
		assert.ErrorIs(t, kv.Set(key, "x"), ErrInvalidKey, "key %q", key)
	}
}

func TestFile_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	kv, err := NewFile(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, kv.Dir())

	require.NoError(t, kv.Set("doneTaskList", `[{"text":"x"}]`))

	data, err := os.ReadFile(filepath.Join(dir, "doneTaskList.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"x"}]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFile_NoDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskpad.db")

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("todoTaskList", `[{"text":"persisted"}]`))
	require.NoError(t, kv.Close())

	kv, err = NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close()
	v, ok, err := kv.Get("todoTaskList")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"text":"persisted"}]`, v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(Params{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(Params{Backend: "", DataDir: filepath.Join(dir, "data")})
	require.NoError(t, err)
	assert.IsType(t, &File{}, kv, "file is the default backend")

	kv, err = Open(Params{Backend: "SQLite", DBPath: filepath.Join(dir, "t.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open(Params{Backend: "redis"})
	assert.EqualError(t, err, "unknown storage backend: redis")
}
