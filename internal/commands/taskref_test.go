package commands

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/exitcode"
	"taskpad/internal/tasks"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	require.NoError(t, err)
	assert.Equal(t, 5, ref.Num)
	assert.Equal(t, 4, ref.Index())
	assert.Empty(t, ref.Rest)
}

func TestParseTaskRef_MultiDigitWithRest(t *testing.T) {
	ref, err := ParseTaskRef([]string{"12", "new", "text"})
	require.NoError(t, err)
	assert.Equal(t, 12, ref.Num)
	assert.Equal(t, []string{"new", "text"}, ref.Rest)
}

func TestParseTaskRef_Zero(t *testing.T) {
	// range is the store's business
	ref, err := ParseTaskRef([]string{"0"})
	require.NoError(t, err)
	assert.Equal(t, -1, ref.Index())
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskRef(nil)
	assert.ErrorIs(t, err, ErrTaskRefRequired)
}

func TestParseTaskRef_Invalid_Error(t *testing.T) {
	for _, arg := range []string{"a1", "-1", "1.5", "", "٣", "x"} {
		_, err := ParseTaskRef([]string{arg})
		require.Error(t, err, arg)
		assert.Equal(t, "invalid task reference: "+arg, err.Error())
	}
}

func TestParseTaskRef_Overflow_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"99999999999999999999999"})
	assert.EqualError(t, err, "invalid task reference: 99999999999999999999999")
}

func TestParseRef_PrintsError(t *testing.T) {
	var errOut bytes.Buffer
	_, ok := parseRef(nil, &errOut)
	assert.False(t, ok)
	assert.Equal(t, "error: task reference required\n", errOut.String())

	errOut.Reset()
	_, ok = parseRef([]string{"abc"}, &errOut)
	assert.False(t, ok)
	assert.Equal(t, "error: invalid task reference: abc\n", errOut.String())
}

func TestStoreError(t *testing.T) {
	ref := TaskRef{Num: 3}
	cases := []struct {
		err  error
		line string
		code int
	}{
		{fmt.Errorf("%w: 2", tasks.ErrOutOfRange), "error: task number out of range: 3\n", exitcode.UserError},
		{tasks.ErrEditing, "error: task is being edited: 3\n", exitcode.UserError},
		{tasks.ErrNoSession, "error: no edit in progress\n", exitcode.UserError},
		{errors.New("disk full"), "error: storage error: disk full\n", exitcode.BackendError},
	}
	for _, tc := range cases {
		var errOut bytes.Buffer
		code := storeError(&errOut, tc.err, ref)
		assert.Equal(t, tc.code, code)
		assert.Equal(t, tc.line, errOut.String())
	}
}
