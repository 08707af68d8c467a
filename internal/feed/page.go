package feed

import (
	"math"
	"time"
)

// ViewKind distinguishes the two cached view families
type ViewKind string

const (
	// ViewTimeline is a user's own posts
	ViewTimeline ViewKind = "timeline"
	// ViewNewsfeed is posts from accounts the user follows
	ViewNewsfeed ViewKind = "newsfeed"
)

// lookaheadRows is the number of cached rows kept beyond one page's worth.
// Inserts trim the tail back to Size+lookaheadRows.
const lookaheadRows = 10

// Author is the denormalized user projection embedded in cached tweets
type Author struct {
	ID                string `json:"id"`
	UserName          string `json:"userName"`
	DisplayName       string `json:"displayName"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// Tweet is the fully denormalized, cache-ready form of a post.
// RefTweet nests at most one level; a retweet of a retweet references the
// original directly.
type Tweet struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Type         string    `json:"type"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	RetweetRefID string    `json:"retweetRefId,omitempty"`
	RefTweet     *Tweet    `json:"refTweet,omitempty"`
	User         *Author   `json:"user,omitempty"`
	IsLiked      bool      `json:"isLiked"`
	IsRetweeted  bool      `json:"isRetweeted"`
}

// Page is one cached paginated view, newest tweet first. At most one live
// entry exists per (View, OwnerID) key.
type Page struct {
	OwnerID       string   `json:"ownerId"`
	View          ViewKind `json:"view"`
	Page          int      `json:"page"`
	Size          int      `json:"size"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	LastPage      int      `json:"lastPage"`
	Tweets        []Tweet  `json:"tweets"`
}

func pageCount(totalElements int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalElements) / float64(size)))
}

func lastPageFor(totalElements int64, size int) int {
	last := pageCount(totalElements, size) - 1
	if last < 0 {
		return 0
	}
	return last
}

// recount recomputes the pagination fields from TotalElements and Size.
// Called only by count-changing mutations.
func (p *Page) recount() {
	p.TotalPages = pageCount(p.TotalElements, p.Size)
	p.LastPage = lastPageFor(p.TotalElements, p.Size)
}

// InsertHead prepends a tweet, bumps the element count, recomputes
// pagination and trims the tail back to the lookahead window.
func (p *Page) InsertHead(t Tweet) {
	p.Tweets = append([]Tweet{t}, p.Tweets...)
	p.TotalElements++
	p.recount()
	if limit := p.Size + lookaheadRows; len(p.Tweets) > limit {
		p.Tweets = p.Tweets[:limit]
	}
}

// ReplaceByID swaps every cached tweet whose ID matches for the given
// snapshot. Counts and pagination are untouched.
func (p *Page) ReplaceByID(t Tweet) {
	for i := range p.Tweets {
		if p.Tweets[i].ID == t.ID {
			p.Tweets[i] = t
		}
	}
}

// RemoveIf drops every tweet matching the predicate and returns how many
// were dropped. The element count is decremented by the exact number
// removed and pagination recomputed only when something was removed.
func (p *Page) RemoveIf(pred func(*Tweet) bool) int {
	kept := p.Tweets[:0]
	for i := range p.Tweets {
		if !pred(&p.Tweets[i]) {
			kept = append(kept, p.Tweets[i])
		}
	}
	removed := len(p.Tweets) - len(kept)
	p.Tweets = kept
	if removed > 0 {
		p.TotalElements -= int64(removed)
		if p.TotalElements < 0 {
			p.TotalElements = 0
		}
		p.recount()
	}
	return removed
}

// Transform applies fn to every cached tweet in place. Never changes counts.
func (p *Page) Transform(fn func(*Tweet)) {
	for i := range p.Tweets {
		fn(&p.Tweets[i])
	}
}
