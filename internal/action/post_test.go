package action_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/domain"
)

func TestCreatePostJoinsAuthor(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "a@x.com", "A")

	o := f.acts.CreatePost(context.Background(), action.CreatePostInput{
		Title:    "T",
		Content:  strPtr("body"),
		AuthorID: u.ID,
	})
	require.True(t, o.Success, o.Error)

	p := o.Data
	assert.NotZero(t, p.ID)
	assert.Equal(t, u.ID, p.AuthorID)
	require.NotNil(t, p.Author)
	assert.Equal(t, u.ID, p.Author.ID)
	assert.Equal(t, u.Email, p.Author.Email)
	assert.Equal(t, u.Name, p.Author.Name)
	assert.Equal(t, "body", p.Content)
	assert.False(t, p.Published)
}

func TestCreatePostDefaults(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "a@x.com", "A")

	p := f.mustPost(t, u.ID, "no content")
	assert.Equal(t, "", p.Content)
	assert.False(t, p.Published)
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "a@x.com", "A")
	signals := f.rec.count()

	tests := []struct {
		name string
		in   action.CreatePostInput
	}{
		{"missing title", action.CreatePostInput{AuthorID: u.ID}},
		{"missing author", action.CreatePostInput{Title: "T"}},
		{"missing both", action.CreatePostInput{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.postCount(t, domain.PostFilter{})
			o := f.acts.CreatePost(context.Background(), tt.in)

			assert.False(t, o.Success)
			assert.Equal(t, "Title and author are required", o.Error)
			assert.Equal(t, action.KindInvalid, o.Kind)
			assert.Equal(t, before, f.postCount(t, domain.PostFilter{}))
		})
	}
	assert.Equal(t, signals, f.rec.count())
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len(), "validation is not an operator error")
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	f := newFixture(t)

	o := f.acts.CreatePost(context.Background(), action.CreatePostInput{Title: "T", AuthorID: 999})
	assert.False(t, o.Success)
	assert.Equal(t, "Failed to create post", o.Error)
	assert.Zero(t, f.postCount(t, domain.PostFilter{}))
	assert.Equal(t, 1, f.logs.FilterMessage("store call failed").Len())
}

func TestUpdatePostPartialPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "a@x.com", "A")
	created := f.acts.CreatePost(ctx, action.CreatePostInput{Title: "T", Content: strPtr("C"), AuthorID: u.ID})
	require.True(t, created.Success)

	o := f.acts.UpdatePost(ctx, created.Data.ID, action.UpdatePostInput{Published: boolPtr(true)})
	require.True(t, o.Success, o.Error)
	assert.True(t, o.Data.Published)
	assert.Equal(t, "T", o.Data.Title)
	assert.Equal(t, "C", o.Data.Content)
	require.NotNil(t, o.Data.Author)
	assert.Equal(t, u.ID, o.Data.Author.ID)

	o = f.acts.UpdatePost(ctx, created.Data.ID, action.UpdatePostInput{Title: strPtr("T2"), Content: strPtr("")})
	require.True(t, o.Success, o.Error)
	assert.Equal(t, "T2", o.Data.Title)
	assert.Equal(t, "", o.Data.Content)
	assert.True(t, o.Data.Published)

	o = f.acts.UpdatePost(ctx, created.Data.ID, action.UpdatePostInput{Title: strPtr(""), Published: boolPtr(false)})
	require.True(t, o.Success, o.Error)
	assert.Equal(t, "T2", o.Data.Title, "empty title is ignored")
	assert.False(t, o.Data.Published)
}

func TestUpdatePostNoFields(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "a@x.com", "A")
	p := f.mustPost(t, u.ID, "T")

	o := f.acts.UpdatePost(context.Background(), p.ID, action.UpdatePostInput{})
	require.True(t, o.Success, o.Error)
	assert.Equal(t, p, o.Data)
}

func TestUpdateMissingPost(t *testing.T) {
	f := newFixture(t)

	o := f.acts.UpdatePost(context.Background(), 42, action.UpdatePostInput{Published: boolPtr(true)})
	assert.False(t, o.Success)
	assert.Equal(t, "Failed to update post", o.Error)
	assert.Equal(t, action.KindNotFound, o.Kind)
}

func TestGetPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "a@x.com", "A")
	p := f.mustPost(t, u.ID, "T")

	first := f.acts.GetPost(ctx, p.ID)
	second := f.acts.GetPost(ctx, p.ID)
	require.True(t, first.Success)
	assert.Equal(t, first, second)
	assert.Equal(t, p, first.Data)

	missing := f.acts.GetPost(ctx, p.ID+100)
	assert.False(t, missing.Success)
	assert.Equal(t, "Post not found", missing.Error)
	assert.Equal(t, action.KindNotFound, missing.Kind)
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestListPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := f.acts.ListPosts(ctx)
	require.True(t, empty.Success)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)

	a := f.mustUser(t, "a@x.com", "A")
	b := f.mustUser(t, "b@x.com", "B")
	f.mustPost(t, a.ID, "first")
	f.mustPost(t, b.ID, "second")

	o := f.acts.ListPosts(ctx)
	require.True(t, o.Success)
	require.Len(t, o.Data, 2)
	for _, p := range o.Data {
		require.NotNil(t, p.Author)
		assert.Equal(t, p.AuthorID, p.Author.ID)
	}
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "a@x.com", "A")
	p := f.mustPost(t, u.ID, "T")
	signals := f.rec.count()

	o := f.acts.DeletePost(ctx, p.ID)
	require.True(t, o.Success)
	assert.Equal(t, "Post deleted", o.Message)
	assert.Greater(t, f.rec.count(), signals)
	assert.False(t, f.acts.GetPost(ctx, p.ID).Success)

	// 作者不受影响
	assert.True(t, f.acts.GetUser(ctx, u.ID).Success)

	again := f.acts.DeletePost(ctx, p.ID)
	assert.False(t, again.Success)
	assert.Equal(t, "Failed to delete post", again.Error)
}

func TestMutationsSignalRefresh(t *testing.T) {
	f := newFixture(t)
	u := f.mustUser(t, "a@x.com", "A")
	f.mustPost(t, u.ID, "T")

	f.rec.mu.Lock()
	defer f.rec.mu.Unlock()
	assert.Equal(t, []string{"posts", "users", "posts", "users"}, f.rec.views)
}
