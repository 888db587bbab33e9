package migrate

import (
	"context"

	"blogly/internal/post"
	"blogly/internal/shared/db"
	"blogly/internal/tag"
	"blogly/internal/user"
)

// AutoMigrateAll creates users, tags, posts and the post_tag join table
// with their foreign keys. users must come first so the posts.poster_id
// constraint declared on User.Posts is known when posts is created.
func AutoMigrateAll(ctx context.Context, store *db.Store) error {
	return store.Write(ctx).AutoMigrate(
		&user.User{},
		&tag.Tag{},
		&post.Post{},
	)
}
