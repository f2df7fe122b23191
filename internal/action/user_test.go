package action_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/domain"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.acts.CreateUser(ctx, action.CreateUserInput{Email: "a@x.com", Name: strPtr("A")})
	require.True(t, o.Success, o.Error)
	assert.NotZero(t, o.Data.ID)
	assert.Equal(t, "a@x.com", o.Data.Email)
	require.NotNil(t, o.Data.Name)
	assert.Equal(t, "A", *o.Data.Name)
	assert.NotNil(t, o.Data.Posts)
	assert.Empty(t, o.Data.Posts)

	anon := f.acts.CreateUser(ctx, action.CreateUserInput{Email: "b@x.com", Name: strPtr("")})
	require.True(t, anon.Success, anon.Error)
	assert.Nil(t, anon.Data.Name)

	// email 不要求唯一
	dup := f.acts.CreateUser(ctx, action.CreateUserInput{Email: "a@x.com"})
	assert.True(t, dup.Success, dup.Error)
}

func TestCreateUserRequiresEmail(t *testing.T) {
	f := newFixture(t)

	o := f.acts.CreateUser(context.Background(), action.CreateUserInput{Name: strPtr("A")})
	assert.False(t, o.Success)
	assert.Equal(t, "Email is required", o.Error)
	assert.Equal(t, action.KindInvalid, o.Kind)
	assert.Zero(t, f.rec.count())
}

func TestUpdateUserPartialPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "a@x.com", "A")

	o := f.acts.UpdateUser(ctx, u.ID, action.UpdateUserInput{Name: strPtr("Alice")})
	require.True(t, o.Success, o.Error)
	assert.Equal(t, "a@x.com", o.Data.Email)
	assert.Equal(t, "Alice", *o.Data.Name)

	o = f.acts.UpdateUser(ctx, u.ID, action.UpdateUserInput{Email: strPtr("")})
	require.True(t, o.Success, o.Error)
	assert.Equal(t, "a@x.com", o.Data.Email, "empty email is ignored")
	assert.Equal(t, "Alice", *o.Data.Name)

	o = f.acts.UpdateUser(ctx, u.ID, action.UpdateUserInput{Email: strPtr("alice@x.com"), Name: strPtr("")})
	require.True(t, o.Success, o.Error)
	assert.Equal(t, "alice@x.com", o.Data.Email)
	assert.Nil(t, o.Data.Name)

	missing := f.acts.UpdateUser(ctx, u.ID+100, action.UpdateUserInput{Name: strPtr("X")})
	assert.False(t, missing.Success)
	assert.Equal(t, "Failed to update user", missing.Error)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "a@x.com", "A")
	f.mustPost(t, u.ID, "T")

	first := f.acts.GetUser(ctx, u.ID)
	require.True(t, first.Success)
	require.Len(t, first.Data.Posts, 1)
	assert.Equal(t, first, f.acts.GetUser(ctx, u.ID))

	missing := f.acts.GetUser(ctx, u.ID+1)
	assert.False(t, missing.Success)
	assert.Equal(t, "User not found", missing.Error)
}

func TestListUsersEagerPostsOrderedByIDDesc(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustUser(t, "a@x.com", "A")
	b := f.mustUser(t, "b@x.com", "B")
	f.mustPost(t, a.ID, "a1")
	f.mustPost(t, a.ID, "a2")

	o := f.acts.ListUsers(ctx)
	require.True(t, o.Success, o.Error)
	require.Len(t, o.Data, 2)
	assert.Equal(t, b.ID, o.Data[0].ID)
	assert.Equal(t, a.ID, o.Data[1].ID)
	assert.NotNil(t, o.Data[0].Posts)
	assert.Empty(t, o.Data[0].Posts)
	assert.Len(t, o.Data[1].Posts, 2)
}

func TestCreateUserThenPostScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.acts.CreateUser(ctx, action.CreateUserInput{Email: "a@x.com", Name: strPtr("A")})
	require.True(t, u.Success)
	p := f.acts.CreatePost(ctx, action.CreatePostInput{Title: "T", AuthorID: u.Data.ID})
	require.True(t, p.Success)

	list := f.acts.ListUsers(ctx)
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)
	require.Len(t, list.Data[0].Posts, 1)
	assert.Equal(t, "T", list.Data[0].Posts[0].Title)

	noAuthor := f.acts.CreatePost(ctx, action.CreatePostInput{Title: "T"})
	assert.False(t, noAuthor.Success)
	assert.Equal(t, "Title and author are required", noAuthor.Error)
}

func TestDeleteUserCascadesPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustUser(t, "a@x.com", "A")
	b := f.mustUser(t, "b@x.com", "B")
	for _, title := range []string{"1", "2", "3"} {
		f.mustPost(t, a.ID, title)
	}
	kept := f.mustPost(t, b.ID, "other")

	o := f.acts.DeleteUser(ctx, a.ID)
	require.True(t, o.Success, o.Error)
	assert.Equal(t, "User deleted", o.Message)

	assert.Zero(t, f.postCount(t, domain.PostFilter{AuthorID: &a.ID}))
	assert.False(t, f.acts.GetUser(ctx, a.ID).Success)
	assert.True(t, f.acts.GetPost(ctx, kept.ID).Success)
}

func TestDeleteMissingUserRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.acts.DeleteUser(ctx, 77)
	assert.False(t, o.Success)
	assert.Equal(t, "Failed to delete user", o.Error)
	assert.Equal(t, action.KindNotFound, o.Kind)
	assert.Zero(t, f.rec.count())
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.mustUser(t, "a@x.com", "A")
	f.mustUser(t, "b@x.com", "B")
	p := f.mustPost(t, u.ID, "draft")
	f.mustPost(t, u.ID, "other")
	require.True(t, f.acts.UpdatePost(ctx, p.ID, action.UpdatePostInput{Published: boolPtr(true)}).Success)

	o := f.acts.Stats(ctx)
	require.True(t, o.Success, o.Error)
	assert.Equal(t, action.Stats{Users: 2, Posts: 2, PublishedPosts: 1}, o.Data)
}
