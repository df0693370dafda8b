package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkDraft_AddTag(t *testing.T) {
	t.Parallel()

	t.Run("duplicate tag is a no-op", func(t *testing.T) {
		t.Parallel()
		d := NewWorkDraft()
		assert.True(t, d.AddTag("logo"))
		assert.False(t, d.AddTag("logo"))
		assert.False(t, d.AddTag("  LOGO "))
		assert.Len(t, d.Tags(), 1)
	})

	t.Run("overlong tag is rejected", func(t *testing.T) {
		t.Parallel()
		d := NewWorkDraft()
		assert.False(t, d.AddTag(strings.Repeat("x", 21)))
		assert.Empty(t, d.Tags())
	})

	t.Run("tag cap", func(t *testing.T) {
		t.Parallel()
		d := NewWorkDraft()
		for i := 0; i < 10; i++ {
			require.True(t, d.AddTag(string(rune('a'+i))))
		}
		assert.False(t, d.AddTag("overflow"))
		assert.Len(t, d.Tags(), 10)
	})

	t.Run("empty tag is a no-op", func(t *testing.T) {
		t.Parallel()
		d := NewWorkDraft()
		assert.False(t, d.AddTag("   "))
		assert.Empty(t, d.Tags())
	})
}

func TestWorkDraft_AddImages_Truncates(t *testing.T) {
	t.Parallel()

	d := NewWorkDraft()
	d.AddImages([]string{"a.png", "b.png", "c.png"})
	require.Len(t, d.Images(), 3)

	// Adding 4 more keeps the first 5 total.
	d.AddImages([]string{"d.png", "e.png", "f.png", "g.png"})
	images := d.Images()
	require.Len(t, images, 5)
	assert.Equal(t, []string{"a.png", "b.png", "c.png", "d.png", "e.png"}, images)
}

func TestWorkDraft_Validate_FieldOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
		images      []string
		wantMsg     string
	}{
		{
			name:    "missing title reported first",
			wantMsg: "Title is required",
		},
		{
			name:    "overlong title",
			title:   strings.Repeat("x", 101),
			wantMsg: "Title too long (max 100 characters)",
		},
		{
			name:    "missing description after valid title",
			title:   "Brand identity",
			wantMsg: "Description is required",
		},
		{
			name:        "overlong description",
			title:       "Brand identity",
			description: strings.Repeat("x", 501),
			wantMsg:     "Description too long (max 500 characters)",
		},
		{
			name:        "missing images after valid text fields",
			title:       "Brand identity",
			description: "Full identity system for a coffee roaster.",
			wantMsg:     "At least one image is required",
		},
		{
			name:        "complete draft passes",
			title:       "Brand identity",
			description: "Full identity system for a coffee roaster.",
			images:      []string{"cover.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := NewWorkDraft()
			d.SetTitle(tt.title)
			d.SetDescription(tt.description)
			d.AddImages(tt.images)

			err := d.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestWorkDraft_SubmitSerialization(t *testing.T) {
	t.Parallel()

	d := NewWorkDraft()
	require.True(t, d.BeginSubmit())

	// A second submit while the first is in flight is refused.
	assert.False(t, d.BeginSubmit())

	d.EndSubmit()
	assert.True(t, d.BeginSubmit())
}

func TestWorkDraft_Build(t *testing.T) {
	t.Parallel()

	d := NewWorkDraft()
	d.SetTitle("  Poster series  ")
	d.SetDescription("Three-part gig poster series.")
	d.AddTag("Print")
	d.AddTag("poster")
	d.AddImages([]string{"one.png", "two.png"})

	work := d.Build(7)
	assert.Equal(t, "Poster series", work.Title)
	assert.Equal(t, uint(7), work.UserID)
	assert.True(t, work.IsActive)
	require.Len(t, work.Images, 2)
	assert.Equal(t, 0, work.Images[0].Position)
	assert.Equal(t, 1, work.Images[1].Position)
	require.Len(t, work.Tags, 2)
	assert.Equal(t, "print", work.Tags[0].Tag)
}

func TestWorkDraft_Reset(t *testing.T) {
	t.Parallel()

	d := NewWorkDraft()
	d.SetTitle("Keep me")
	d.AddTag("tag")
	d.AddImages([]string{"img.png"})

	d.Reset()
	assert.Empty(t, d.Tags())
	assert.Empty(t, d.Images())
	assert.Error(t, d.Validate())
}
