package feed

import (
	"context"
	"fmt"

	"github.com/noobmasters/feedcache/internal/models"
)

// Resolver fills in the denormalized fields of a tweet snapshot from the
// content store
type Resolver struct {
	content ContentStore
}

// NewResolver creates a new resolver
func NewResolver(content ContentStore) *Resolver {
	return &Resolver{content: content}
}

// SnapshotTweet builds a cache-ready snapshot from a stored tweet. The
// denormalized fields (User, RefTweet, viewer flags) are left for the
// resolver to fill in.
func SnapshotTweet(m *models.Tweet) Tweet {
	t := Tweet{
		ID:           m.ID,
		UserID:       m.UserID,
		Type:         m.Type,
		Text:         m.Text,
		CreatedAt:    m.CreatedAt,
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
	}
	if m.RetweetRefID.Valid {
		t.RetweetRefID = m.RetweetRefID.String
	}
	return t
}

// SnapshotAuthor builds the embeddable author projection from a stored user
func SnapshotAuthor(u *models.User) *Author {
	return &Author{
		ID:                u.ID,
		UserName:          u.UserName,
		DisplayName:       u.DisplayName,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

// Followers resolves the audience of a user's posts: everyone following
// the given user. Each call is a fresh content-store query.
func (r *Resolver) Followers(ctx context.Context, userID string) ([]string, error) {
	followers, err := r.content.FollowersOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve followers of %s: %w", userID, err)
	}
	return followers, nil
}

// Denormalize resolves the author snapshot and, for retweets, the
// referenced tweet with its own author. Returns false when the author no
// longer exists or is filtered out, in which case the caller must drop the
// whole event. A missing or filtered referenced tweet is non-fatal: the
// nested field is simply left unset.
func (r *Resolver) Denormalize(ctx context.Context, t *Tweet) (bool, error) {
	author, err := r.content.ActiveUserByID(ctx, t.UserID)
	if err != nil {
		return false, fmt.Errorf("resolve author %s: %w", t.UserID, err)
	}
	if author == nil {
		return false, nil
	}
	t.User = SnapshotAuthor(author)

	if t.Type == models.TweetTypeRetweet && t.RetweetRefID != "" {
		if err := r.resolveRef(ctx, t); err != nil {
			return false, err
		}
	}
	return true, nil
}

// resolveRef fills t.RefTweet when the referenced tweet and its author are
// still visible
func (r *Resolver) resolveRef(ctx context.Context, t *Tweet) error {
	ref, err := r.content.TweetByID(ctx, t.RetweetRefID)
	if err != nil {
		return fmt.Errorf("resolve ref tweet %s: %w", t.RetweetRefID, err)
	}
	if ref == nil || ref.DeletedAt.Valid {
		return nil
	}
	refAuthor, err := r.content.ActiveUserByID(ctx, ref.UserID)
	if err != nil {
		return fmt.Errorf("resolve ref author %s: %w", ref.UserID, err)
	}
	if refAuthor == nil {
		return nil
	}
	snapshot := SnapshotTweet(ref)
	snapshot.User = SnapshotAuthor(refAuthor)
	t.RefTweet = &snapshot
	return nil
}

// Flags resolves the viewer's like/retweet relation to a tweet; both
// default to false when no relation row exists
func (r *Resolver) Flags(ctx context.Context, viewerID, tweetID string) (liked, retweeted bool, err error) {
	rel, err := r.content.LikeRetweet(ctx, viewerID, tweetID)
	if err != nil {
		return false, false, fmt.Errorf("resolve like/retweet for %s on %s: %w", viewerID, tweetID, err)
	}
	if rel == nil {
		return false, false, nil
	}
	return rel.IsLiked, rel.IsRetweeted, nil
}

// decorate fills the denormalized fields of a rebuilt snapshot for one
// viewer. Unlike Denormalize, a missing author is non-fatal here: the feed
// row is kept with the nested field unset.
func (r *Resolver) decorate(ctx context.Context, t *Tweet, viewerID string) error {
	author, err := r.content.ActiveUserByID(ctx, t.UserID)
	if err != nil {
		return err
	}
	if author != nil {
		t.User = SnapshotAuthor(author)
	}

	liked, retweeted, err := r.Flags(ctx, viewerID, t.ID)
	if err != nil {
		return err
	}
	t.IsLiked = liked
	t.IsRetweeted = retweeted

	if t.Type == models.TweetTypeRetweet && t.RetweetRefID != "" {
		if err := r.resolveRef(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
