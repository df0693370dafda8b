package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	WorkKeyPrefix    = "work:%d"
	CommentKeyPrefix = "comment:%d"

	postsListVersionKey = "posts:list:ver"
	worksListVersionKey = "works:list:ver"
)

const (
	UserTTL    = 5 * time.Minute
	PostTTL    = 30 * time.Minute
	WorkTTL    = 30 * time.Minute
	CommentTTL = 10 * time.Minute
	ListTTL    = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func WorkKey(workID uint) string {
	return fmt.Sprintf(WorkKeyPrefix, workID)
}

func CommentKey(commentID uint) string {
	return fmt.Sprintf(CommentKeyPrefix, commentID)
}

// listVersion reads the current version counter for a list key family.
// Bumping the counter on write makes every previously cached page unreachable,
// which is cheaper than deleting each page key individually.
func listVersion(ctx context.Context, counterKey string) int64 {
	if client == nil {
		return 0
	}
	v, err := client.Get(ctx, counterKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

// PostsListKey builds the cache key for one page of the post list, scoped by
// the active filters and the current list version.
func PostsListKey(ctx context.Context, page, limit int, category, tag string, authorID uint) string {
	return fmt.Sprintf("posts:list:v%d:p%d:l%d:c%s:t%s:a%d",
		listVersion(ctx, postsListVersionKey), page, limit, category, tag, authorID)
}

// WorksListKey builds the cache key for one page of the work gallery.
func WorksListKey(ctx context.Context, page, limit int, tag string, authorID uint) string {
	return fmt.Sprintf("works:list:v%d:p%d:l%d:t%s:a%d",
		listVersion(ctx, worksListVersionKey), page, limit, tag, authorID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateWork(ctx context.Context, workID uint) {
	Invalidate(ctx, WorkKey(workID))
}

func InvalidatePostsList(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, postsListVersionKey)
	}
}

func InvalidateWorksList(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, worksListVersionKey)
	}
}
