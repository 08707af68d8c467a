package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noobmasters/feedcache/internal/models"
	"github.com/noobmasters/feedcache/pkg/telemetry"
)

// Router dispatches cache notifications to per-event handlers. It holds no
// state across events; any two invocations may run concurrently, including
// against the same cache key. Writes are plain read-modify-write with no
// compare-and-swap: a concurrent writer can win the race and drop this
// event's delta, which the TTL and the authoritative store bound to a
// transient inconsistency.
type Router struct {
	pages     PageStore
	resolver  *Resolver
	rebuilder *Rebuilder
	logger    *zap.Logger
}

// NewRouter creates a new event router
func NewRouter(pages PageStore, content ContentStore, logger *zap.Logger) *Router {
	return &Router{
		pages:     pages,
		resolver:  NewResolver(content),
		rebuilder: NewRebuilder(content),
		logger:    logger,
	}
}

// Handle applies one event to every affected cached view and reports a
// per-key outcome list. It never returns an error: failures are contained
// per key, logged, and surfaced in the outcomes. Unknown kinds are a no-op.
func (r *Router) Handle(ctx context.Context, ev Event) []Outcome {
	ctx, span := telemetry.StartSpan(ctx, "feed.handle")
	defer span.End()

	var outcomes []Outcome
	switch ev.Kind {
	case KindCreateTweet:
		outcomes = r.createTweet(ctx, ev)
	case KindCreateRetweet:
		outcomes = r.createRetweet(ctx, ev)
	case KindUpdate, KindUpdateRetweetRef:
		outcomes = r.updateTweet(ctx, ev)
	case KindLike, KindUnlike, KindComment, KindDeleteComment:
		outcomes = r.likeCommentTweet(ctx, ev)
	case KindDelete:
		outcomes = r.deleteTweet(ctx, ev)
	case KindBlockByUser:
		outcomes = r.blockByUser(ctx, ev)
	case KindBlockByAdmin:
		outcomes = r.blockByAdmin(ctx, ev)
	case KindUnfollow:
		outcomes = r.unfollow(ctx, ev)
	case KindFollow:
		outcomes = r.follow(ctx, ev)
	case KindEditProfile:
		outcomes = r.editProfile(ctx, ev)
	default:
		r.logger.Debug("Ignoring unknown event kind", zap.String("kind", string(ev.Kind)))
	}

	for _, o := range outcomes {
		if o.Err != nil {
			r.logger.Warn("Cache mutation failed",
				zap.String("kind", string(ev.Kind)),
				zap.String("key", o.Key()),
				zap.Error(o.Err))
		}
	}
	return outcomes
}

// mutate runs one read-modify-write cycle against a single cache key. A
// missing or expired entry is inert: no write happens and the outcome
// carries neither Applied nor an error. Failures on one key never affect
// the other keys of the same event.
func (r *Router) mutate(ctx context.Context, view ViewKind, ownerID string, fn func(*Page)) Outcome {
	out := Outcome{View: view, OwnerID: ownerID}
	page, err := r.pages.Get(ctx, view, ownerID)
	if err != nil {
		out.Err = fmt.Errorf("get cached page: %w", err)
		return out
	}
	if page == nil {
		return out
	}
	fn(page)
	if err := r.pages.Set(ctx, view, ownerID, page); err != nil {
		out.Err = fmt.Errorf("write cached page: %w", err)
		return out
	}
	out.Applied = true
	return out
}

// fanOut applies the same mutation to the newsfeed of every follower of
// authorID and to authorID's own timeline
func (r *Router) fanOut(ctx context.Context, authorID string, fn func(*Page)) []Outcome {
	followers, err := r.resolver.Followers(ctx, authorID)
	if err != nil {
		return []Outcome{{Err: err}}
	}
	outcomes := make([]Outcome, 0, len(followers)+1)
	for _, follower := range followers {
		outcomes = append(outcomes, r.mutate(ctx, ViewNewsfeed, follower, fn))
	}
	outcomes = append(outcomes, r.mutate(ctx, ViewTimeline, authorID, fn))
	return outcomes
}

func (r *Router) createTweet(ctx context.Context, ev Event) []Outcome {
	if ev.Tweet == nil {
		return nil
	}
	tweet := *ev.Tweet
	return r.fanOut(ctx, tweet.UserID, func(p *Page) {
		p.InsertHead(tweet)
	})
}

// createRetweet inserts the retweet like any new tweet, then patches the
// referenced original everywhere it is cached so its rendered state picks
// up the new retweet. The second step is an explicit replace pass, not a
// re-entry into the event pipeline.
func (r *Router) createRetweet(ctx context.Context, ev Event) []Outcome {
	if ev.Tweet == nil {
		return nil
	}
	outcomes := r.createTweet(ctx, ev)
	if ev.Tweet.RefTweet != nil {
		outcomes = append(outcomes, r.replaceEverywhere(ctx, *ev.Tweet.RefTweet)...)
	}
	return outcomes
}

// replaceEverywhere swaps the snapshot into every cached view of its
// author's audience
func (r *Router) replaceEverywhere(ctx context.Context, tweet Tweet) []Outcome {
	return r.fanOut(ctx, tweet.UserID, func(p *Page) {
		p.ReplaceByID(tweet)
	})
}

func (r *Router) updateTweet(ctx context.Context, ev Event) []Outcome {
	if ev.Tweet == nil {
		return nil
	}
	return r.replaceEverywhere(ctx, *ev.Tweet)
}

// likeCommentTweet re-resolves the author and referenced-tweet snapshots
// before replacing, since like/comment counters ride on the snapshot
func (r *Router) likeCommentTweet(ctx context.Context, ev Event) []Outcome {
	if ev.Tweet == nil {
		return nil
	}
	tweet := *ev.Tweet
	ok, err := r.resolver.Denormalize(ctx, &tweet)
	if err != nil {
		return []Outcome{{Err: err}}
	}
	if !ok {
		// Author gone or filtered out: drop the event
		return nil
	}
	return r.replaceEverywhere(ctx, tweet)
}

func (r *Router) deleteTweet(ctx context.Context, ev Event) []Outcome {
	if ev.Tweet == nil {
		return nil
	}
	id := ev.Tweet.ID
	return r.fanOut(ctx, ev.Tweet.UserID, func(p *Page) {
		p.RemoveIf(func(t *Tweet) bool { return t.ID == id })
	})
}

// scrub removes every post authored by authorID and nulls any nested
// reference to a post of theirs
func scrub(authorID string) func(*Page) {
	return func(p *Page) {
		p.RemoveIf(func(t *Tweet) bool { return t.UserID == authorID })
		p.Transform(func(t *Tweet) {
			if t.Type == models.TweetTypeRetweet && t.RefTweet != nil && t.RefTweet.UserID == authorID {
				t.RefTweet = nil
			}
		})
	}
}

// blockByAdmin erases an admin-blocked user from every follower's
// newsfeed. The blocked user's own timeline is left alone: it stays
// visible to them alone.
func (r *Router) blockByAdmin(ctx context.Context, ev Event) []Outcome {
	if ev.UserID == "" {
		return nil
	}
	followers, err := r.resolver.Followers(ctx, ev.UserID)
	if err != nil {
		return []Outcome{{Err: err}}
	}
	outcomes := make([]Outcome, 0, len(followers))
	for _, follower := range followers {
		outcomes = append(outcomes, r.mutate(ctx, ViewNewsfeed, follower, scrub(ev.UserID)))
	}
	return outcomes
}

// blockByUser makes the block symmetric across four cache entries: each
// party's newsfeed and timeline stop showing the other's posts and
// referenced tweets
func (r *Router) blockByUser(ctx context.Context, ev Event) []Outcome {
	if ev.UserID == "" || ev.RefUserID == "" {
		return nil
	}
	blocker, blocked := ev.UserID, ev.RefUserID
	return []Outcome{
		r.mutate(ctx, ViewNewsfeed, blocker, scrub(blocked)),
		r.mutate(ctx, ViewTimeline, blocker, scrub(blocked)),
		r.mutate(ctx, ViewNewsfeed, blocked, scrub(blocker)),
		r.mutate(ctx, ViewTimeline, blocked, scrub(blocker)),
	}
}

// unfollow drops the unfollowed author's posts from the actor's newsfeed,
// decrementing the count by exactly the number removed
func (r *Router) unfollow(ctx context.Context, ev Event) []Outcome {
	if ev.UserID == "" || ev.RefUserID == "" {
		return nil
	}
	unfollowed := ev.UserID
	return []Outcome{
		r.mutate(ctx, ViewNewsfeed, ev.RefUserID, func(p *Page) {
			p.RemoveIf(func(t *Tweet) bool { return t.UserID == unfollowed })
		}),
	}
}

// follow reseeds the follower's cached newsfeed with a fresh paginated
// query, reusing the cached entry's size and page as the rebuild request.
// Without a live cached entry there is nothing to reseed.
func (r *Router) follow(ctx context.Context, ev Event) []Outcome {
	if ev.UserID == "" || ev.RefUserID == "" {
		return nil
	}
	followerID := ev.RefUserID
	out := Outcome{View: ViewNewsfeed, OwnerID: followerID}

	current, err := r.pages.Get(ctx, ViewNewsfeed, followerID)
	if err != nil {
		out.Err = fmt.Errorf("get cached page: %w", err)
		return []Outcome{out}
	}
	if current == nil {
		return []Outcome{out}
	}

	rebuilt, err := r.rebuilder.NewsFeed(ctx, followerID, current.Size, current.Page)
	if err != nil {
		out.Err = fmt.Errorf("rebuild newsfeed: %w", err)
		return []Outcome{out}
	}
	if err := r.pages.Set(ctx, ViewNewsfeed, followerID, rebuilt); err != nil {
		out.Err = fmt.Errorf("write cached page: %w", err)
		return []Outcome{out}
	}
	out.Applied = true
	return []Outcome{out}
}

// editProfile swaps the edited user's author snapshot into their own
// timeline and every follower's newsfeed, including where they appear as a
// referenced-tweet author
func (r *Router) editProfile(ctx context.Context, ev Event) []Outcome {
	if ev.RefUserID == "" {
		return nil
	}
	user, err := r.rebuilder.content.UserByID(ctx, ev.RefUserID)
	if err != nil {
		return []Outcome{{Err: fmt.Errorf("resolve user %s: %w", ev.RefUserID, err)}}
	}
	if user == nil {
		return nil
	}
	author := SnapshotAuthor(user)
	swap := func(p *Page) {
		p.Transform(func(t *Tweet) {
			if t.UserID == author.ID {
				t.User = author
			}
			if t.RefTweet != nil && t.RefTweet.UserID == author.ID {
				t.RefTweet.User = author
			}
		})
	}

	followers, err := r.resolver.Followers(ctx, user.ID)
	if err != nil {
		return []Outcome{{Err: err}}
	}
	outcomes := make([]Outcome, 0, len(followers)+1)
	outcomes = append(outcomes, r.mutate(ctx, ViewTimeline, user.ID, swap))
	for _, follower := range followers {
		outcomes = append(outcomes, r.mutate(ctx, ViewNewsfeed, follower, swap))
	}
	return outcomes
}
