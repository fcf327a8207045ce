package services

import (
	"context"
	"testing"

	"github.com/pitwall/paddockpress/internal/blockdoc"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateFillsDefaults(t *testing.T) {
	st := setupStore(t)
	n := &countNotifier{}
	svc := NewPostService(st, n)
	ctx := context.Background()

	p := &models.Post{Title: "Max Wins Again!"}
	require.NoError(t, svc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.PostStatusDraft, p.Status)
	assert.Equal(t, "max-wins-again", p.Slug)
	assert.Equal(t, []string{models.FallbackSection}, p.Sections)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Equal(t, 1, n.writes)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
}

func TestPostService_CreateKeepsExplicitFields(t *testing.T) {
	st := setupStore(t)
	svc := NewPostService(st, &countNotifier{})
	ctx := context.Background()

	p := &models.Post{
		ID:       "p1",
		Title:    "Quali Report",
		Slug:     "custom-slug",
		Status:   models.PostStatusPublished,
		Sections: []string{"races"},
	}
	require.NoError(t, svc.Create(ctx, p))

	got, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", got.Slug)
	assert.Equal(t, models.PostStatusPublished, got.Status)
	assert.Equal(t, []string{"races"}, got.Sections)
}

func TestPostService_SaveRoundTripsBlocks(t *testing.T) {
	st := setupStore(t)
	n := &countNotifier{}
	svc := NewPostService(st, n)
	ctx := context.Background()

	p := &models.Post{Title: "Tech Corner"}
	require.NoError(t, svc.Create(ctx, p))

	b := blockdoc.NewBlock("paragraph")
	require.NotNil(t, b)
	b.Attributes["text"] = "A deep dive into floor design."
	p.Blocks = []*blockdoc.Block{b}
	require.NoError(t, svc.Save(ctx, p))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, b.ClientID, got.Blocks[0].ClientID)
	assert.Equal(t, "A deep dive into floor design.", got.Blocks[0].Attributes["text"])
	assert.Equal(t, 2, n.writes)
}

func TestPostService_ListBySection(t *testing.T) {
	st := setupStore(t)
	svc := NewPostService(st, &countNotifier{})
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &models.Post{Title: "One", Sections: []string{"news"}}))
	require.NoError(t, svc.Create(ctx, &models.Post{Title: "Two", Sections: []string{"news", "races"}}))
	require.NoError(t, svc.Create(ctx, &models.Post{Title: "Three", Sections: []string{"tech"}}))

	races, err := svc.ListBySection(ctx, "races")
	require.NoError(t, err)
	require.Len(t, races, 1)
	assert.Equal(t, "Two", races[0].Title)

	news, err := svc.ListBySection(ctx, "news")
	require.NoError(t, err)
	assert.Len(t, news, 2)
}

func TestPostService_Delete(t *testing.T) {
	st := setupStore(t)
	n := &countNotifier{}
	svc := NewPostService(st, n)
	ctx := context.Background()

	p := &models.Post{Title: "Short-lived"}
	require.NoError(t, svc.Create(ctx, p))
	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err := svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 2, n.writes)
}

func TestApplyTitle_SlugFollowsTitle(t *testing.T) {
	p := &models.Post{Title: "First Title", Slug: "first-title"}

	ApplyTitle(p, "Second Title")
	assert.Equal(t, "second-title", p.Slug)
	assert.Equal(t, "Second Title", p.Title)
}

func TestApplyTitle_HandEditedSlugIsSticky(t *testing.T) {
	p := &models.Post{Title: "First Title", Slug: "my-own-slug"}

	ApplyTitle(p, "Second Title")
	assert.Equal(t, "my-own-slug", p.Slug)

	// Still sticky on further renames.
	ApplyTitle(p, "Third Title")
	assert.Equal(t, "my-own-slug", p.Slug)
}

func TestToggleSection_AddAndRemove(t *testing.T) {
	p := &models.Post{Sections: []string{"news"}}

	ToggleSection(p, "races")
	assert.Equal(t, []string{"news", "races"}, p.Sections)

	ToggleSection(p, "news")
	assert.Equal(t, []string{"races"}, p.Sections)
}

func TestToggleSection_NeverEmpties(t *testing.T) {
	p := &models.Post{Sections: []string{"tech"}}

	ToggleSection(p, "tech")
	assert.Equal(t, []string{models.FallbackSection}, p.Sections)
}
