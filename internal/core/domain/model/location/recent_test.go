package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentList(t *testing.T) {
	t.Run("should keep most recent first without duplicates", func(t *testing.T) {
		r := NewRecentList(3)
		r.Push("a")
		r.Push("b")
		r.Push("a")

		assert.Equal(t, []string{"a", "b"}, r.IDs())
		assert.Equal(t, 0, r.Rank("a"))
		assert.Equal(t, 1, r.Rank("b"))
		assert.Equal(t, -1, r.Rank("c"))
	})

	t.Run("should evict the oldest entry beyond capacity", func(t *testing.T) {
		r := NewRecentList(2)
		r.Push("a")
		r.Push("b")
		r.Push("c")

		assert.Equal(t, []string{"c", "b"}, r.IDs())
		assert.Equal(t, 2, r.Len())
	})

	t.Run("should fall back to the default capacity", func(t *testing.T) {
		assert.Equal(t, DefaultRecentCapacity, NewRecentList(0).Capacity())
	})

	t.Run("should return a copy", func(t *testing.T) {
		r := NewRecentList(2)
		r.Push("a")
		ids := r.IDs()
		ids[0] = "z"

		assert.Equal(t, []string{"a"}, r.IDs())
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, "ho guom", fold("  Hồ   Gươm "))
	assert.Equal(t, "dai hoc bach khoa", fold("Đại học Bách Khoa"))
	assert.Equal(t, "lotte center", fold("LOTTE Center"))
}
