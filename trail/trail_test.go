package trail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushAndEvents(t *testing.T) {
	tr := New[int]()
	tr.Push(0)
	tr.Push(1)
	tr.Push(5)
	require.Equal(t, []int{0, 1, 5}, tr.Events())
	require.Equal(t, 3, tr.Len())
}

func TestSaveStateRestoreLast(t *testing.T) {
	tr := New[int]()
	tr.Push(0)
	tr.Push(1)
	level := tr.SaveState()
	require.Equal(t, 0, level)
	tr.Push(5)
	require.Equal(t, 1, tr.CurrentDecisionLevel())

	var undone []int
	tr.RestoreLast(func(v int) { undone = append(undone, v) })
	require.Equal(t, []int{5}, undone)
	require.Equal(t, []int{0, 1}, tr.Events())
	require.Equal(t, 0, tr.CurrentDecisionLevel())
}

func TestRestoreLastMultipleEvents(t *testing.T) {
	tr := New[string]()
	tr.Push("a")
	tr.SaveState()
	tr.Push("b")
	tr.Push("c")
	tr.Push("d")

	var undone []string
	tr.RestoreLast(func(v string) { undone = append(undone, v) })
	require.Equal(t, []string{"d", "c", "b"}, undone)
	require.Equal(t, []string{"a"}, tr.Events())
}

func TestLastEventMatching(t *testing.T) {
	tr := New[int]()
	tr.Push(0)
	tr.Push(1)
	tr.SaveState()
	tr.Push(5)

	te, ok := tr.LastEventMatching(func(n int) bool { return n <= 1 }, func(dl, idx int) bool { return true })
	require.True(t, ok)
	require.Equal(t, 0, te.Loc.DecisionLevel)
	require.Equal(t, 1, te.Loc.EventIndex)
	require.Equal(t, 1, te.Event)

	_, ok = tr.LastEventMatching(func(n int) bool { return n <= 1 }, func(dl, idx int) bool { return dl < 1 })
	require.False(t, ok)
}

func TestLastEventMatchingNoneFound(t *testing.T) {
	tr := New[int]()
	tr.Push(10)
	tr.Push(20)
	_, ok := tr.LastEventMatching(func(n int) bool { return n < 0 }, func(dl, idx int) bool { return true })
	require.False(t, ok)
}
