package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// hookCounter counts change notifications.
type hookCounter struct{ n int }

func (h *hookCounter) NotifyChanged() { h.n++ }

func TestChanged_NotifiesImmediately(t *testing.T) {
	h := &hookCounter{}
	d := New(WithChangeHook(h))

	d.Changed()
	d.Changed()

	assert.Equal(t, 2, h.n)
	assert.True(t, d.NeedsSave())
	d.MarkSaved()
	assert.False(t, d.NeedsSave())
}

func TestTransaction_DefersToClose(t *testing.T) {
	h := &hookCounter{}
	d := New(WithChangeHook(h))

	tx := d.BeginPropertyTransaction()
	assert.True(t, d.InTransaction())
	for i := 0; i < 5; i++ {
		d.Changed()
	}
	assert.Equal(t, 0, h.n)
	assert.False(t, d.NeedsSave())

	tx.Close()
	assert.Equal(t, 1, h.n)
	assert.True(t, d.NeedsSave())
	assert.False(t, d.InTransaction())

	tx.Close()
	assert.Equal(t, 1, h.n, "second Close is a no-op")
}

func TestTransaction_Nested(t *testing.T) {
	h := &hookCounter{}
	d := New(WithChangeHook(h))

	outer := d.BeginPropertyTransaction()
	inner := d.BeginPropertyTransaction()
	d.Changed()
	inner.Close()
	assert.Equal(t, 0, h.n)
	outer.Close()
	assert.Equal(t, 1, h.n)
}

func TestTransaction_EmptyStillFiresOnce(t *testing.T) {
	calls := 0
	d := New(WithChangeHook(types.ChangeHookFunc(func() { calls++ })))
	d.BeginPropertyTransaction().Close()
	assert.Equal(t, 1, calls)
}

func TestCommit_IgnoresTransaction(t *testing.T) {
	h := &hookCounter{}
	d := New(WithChangeHook(h))
	tx := d.BeginPropertyTransaction()
	d.Commit()
	assert.Equal(t, 1, h.n)
	tx.Close()
	assert.Equal(t, 2, h.n)
}
