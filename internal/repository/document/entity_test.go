package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/micropost-server/internal/model"
)

func TestCollection_NextID(t *testing.T) {
	tests := []struct {
		name      string
		items     []model.Post
		highWater int
		want      int
	}{
		{
			name: "empty collection starts at one",
			want: 1,
		},
		{
			name:  "max live id plus one",
			items: []model.Post{{ID: 1}, {ID: 3}, {ID: 2}},
			want:  4,
		},
		{
			name:      "high-water mark wins after deleting the max",
			items:     []model.Post{{ID: 1}},
			highWater: 7,
			want:      8,
		},
		{
			name:      "live id above a stale mark",
			items:     []model.Post{{ID: 9}},
			highWater: 4,
			want:      10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := posts.nextID(tt.items, tt.highWater)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollection_FindByID(t *testing.T) {
	items := []model.Account{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}

	found, ok := accounts.findByID(items, 2)
	assert.True(t, ok)
	assert.Equal(t, "b", found.Name)

	_, ok = accounts.findByID(items, 5)
	assert.False(t, ok)
}

func TestCollection_RemoveByID(t *testing.T) {
	items := []model.Account{{ID: 1}, {ID: 2}, {ID: 3}}

	remaining, removed := accounts.removeByID(items, 2)
	assert.True(t, removed)
	assert.Equal(t, []model.Account{{ID: 1}, {ID: 3}}, remaining)

	remaining, removed = accounts.removeByID(remaining, 9)
	assert.False(t, removed)
	assert.Len(t, remaining, 2)
}
