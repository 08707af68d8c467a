package feed

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/noobmasters/feedcache/internal/models"
)

func TestRebuildNewsFeed(t *testing.T) {
	content := newFakeContent()
	content.addUser("A", "alice")
	content.addUser("B", "bob")
	content.addUser("F", "fred")
	content.following["F"] = []string{"A", "B"}

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		content.addTweet("A"+string(rune('0'+i)), "A", base.Add(time.Duration(2*i)*time.Minute))
	}
	for i := 0; i < 3; i++ {
		content.addTweet("B"+string(rune('0'+i)), "B", base.Add(time.Duration(2*i+1)*time.Minute))
	}
	// Deleted tweets never appear
	gone := content.addTweet("A9", "A", base.Add(time.Hour))
	gone.DeletedAt = sql.NullTime{Time: base.Add(2 * time.Hour), Valid: true}

	content.rels["F|B1"] = &models.LikeRetweet{UserID: "F", TweetID: "B1", IsLiked: true, IsRetweeted: true}

	rebuilder := NewRebuilder(content)
	page, err := rebuilder.NewsFeed(context.Background(), "F", 5, 0)
	if err != nil {
		t.Fatalf("NewsFeed() error: %v", err)
	}

	if page.View != ViewNewsfeed || page.OwnerID != "F" {
		t.Errorf("identity = %s/%s, want newsfeed/F", page.View, page.OwnerID)
	}
	if page.TotalElements != 7 {
		t.Errorf("TotalElements = %d, want 7", page.TotalElements)
	}
	if page.TotalPages != 2 || page.LastPage != 1 {
		t.Errorf("pagination = %d/%d, want 2/1", page.TotalPages, page.LastPage)
	}
	if len(page.Tweets) != 7 {
		t.Fatalf("len = %d, want 7 (page plus lookahead)", len(page.Tweets))
	}

	// Newest first, authors interleaved
	if page.Tweets[0].ID != "A3" || page.Tweets[1].ID != "B2" {
		t.Errorf("order starts %s,%s, want A3,B2", page.Tweets[0].ID, page.Tweets[1].ID)
	}
	for i := 1; i < len(page.Tweets); i++ {
		if page.Tweets[i].CreatedAt.After(page.Tweets[i-1].CreatedAt) {
			t.Errorf("tweets out of order at %d", i)
		}
	}

	for i := range page.Tweets {
		tw := &page.Tweets[i]
		if tw.User == nil {
			t.Errorf("tweet %s has no author snapshot", tw.ID)
			continue
		}
		if tw.ID == "B1" {
			if !tw.IsLiked || !tw.IsRetweeted {
				t.Errorf("B1 flags = %v/%v, want true/true", tw.IsLiked, tw.IsRetweeted)
			}
		} else if tw.IsLiked || tw.IsRetweeted {
			t.Errorf("tweet %s flags should default to false", tw.ID)
		}
	}
}

func TestRebuildNewsFeedSecondPage(t *testing.T) {
	content := newFakeContent()
	content.addUser("A", "alice")
	content.following["F"] = []string{"A"}

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		content.addTweet("T"+string(rune('0'+i)), "A", base.Add(time.Duration(i)*time.Minute))
	}

	rebuilder := NewRebuilder(content)
	page, err := rebuilder.NewsFeed(context.Background(), "F", 3, 1)
	if err != nil {
		t.Fatalf("NewsFeed() error: %v", err)
	}

	if page.Page != 1 {
		t.Errorf("Page = %d, want 1", page.Page)
	}
	if page.TotalElements != 8 || page.TotalPages != 3 || page.LastPage != 2 {
		t.Errorf("pagination = %d/%d/%d, want 8/3/2",
			page.TotalElements, page.TotalPages, page.LastPage)
	}
	// Offset 3 into 8 rows leaves 5
	if len(page.Tweets) != 5 {
		t.Fatalf("len = %d, want 5", len(page.Tweets))
	}
	if page.Tweets[0].ID != "T4" {
		t.Errorf("window starts at %s, want T4", page.Tweets[0].ID)
	}
}

func TestRebuildRetweetRef(t *testing.T) {
	content := newFakeContent()
	content.addUser("A", "alice")
	content.addUser("B", "bob")
	content.following["F"] = []string{"B"}

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	content.addTweet("O1", "A", base)
	rt := content.addTweet("R1", "B", base.Add(time.Minute))
	rt.Type = models.TweetTypeRetweet
	rt.RetweetRefID = sql.NullString{String: "O1", Valid: true}

	rebuilder := NewRebuilder(content)
	page, err := rebuilder.NewsFeed(context.Background(), "F", 5, 0)
	if err != nil {
		t.Fatalf("NewsFeed() error: %v", err)
	}
	if len(page.Tweets) != 1 {
		t.Fatalf("len = %d, want 1", len(page.Tweets))
	}

	got := page.Tweets[0]
	if got.RefTweet == nil {
		t.Fatal("retweet should carry the referenced tweet")
	}
	if got.RefTweet.ID != "O1" || got.RefTweet.User == nil || got.RefTweet.User.UserName != "alice" {
		t.Errorf("ref = %+v, want O1 by alice", got.RefTweet)
	}

	// A blocked ref author drops the nested field but keeps the retweet
	content.users["A"].BlockedAt = sql.NullTime{Time: base, Valid: true}
	page, err = rebuilder.NewsFeed(context.Background(), "F", 5, 0)
	if err != nil {
		t.Fatalf("NewsFeed() error: %v", err)
	}
	if page.Tweets[0].RefTweet != nil {
		t.Error("ref tweet of a blocked author should be omitted")
	}
}

func TestRebuildTimeline(t *testing.T) {
	content := newFakeContent()
	content.addUser("U", "uma")
	content.addUser("X", "xavi")

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	content.addTweet("T1", "U", base)
	content.addTweet("T2", "U", base.Add(time.Minute))
	content.addTweet("X1", "X", base.Add(2*time.Minute))

	rebuilder := NewRebuilder(content)
	page, err := rebuilder.Timeline(context.Background(), "U", 10, 0)
	if err != nil {
		t.Fatalf("Timeline() error: %v", err)
	}

	if page.View != ViewTimeline {
		t.Errorf("View = %s, want timeline", page.View)
	}
	if page.TotalElements != 2 || len(page.Tweets) != 2 {
		t.Fatalf("total/len = %d/%d, want 2/2", page.TotalElements, len(page.Tweets))
	}
	for i := range page.Tweets {
		if page.Tweets[i].UserID != "U" {
			t.Errorf("timeline holds %s by %s", page.Tweets[i].ID, page.Tweets[i].UserID)
		}
	}
}

func TestRebuildRejectsBadSize(t *testing.T) {
	rebuilder := NewRebuilder(newFakeContent())
	if _, err := rebuilder.NewsFeed(context.Background(), "F", 0, 0); err == nil {
		t.Error("expected error for zero page size")
	}
}
