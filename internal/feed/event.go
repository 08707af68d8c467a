package feed

// EventKind identifies the domain event carried by a cache notification.
// Values match the wire format produced by the tweet and user services.
type EventKind string

// Known event kinds. Anything else is ignored by the router.
const (
	KindCreateTweet     EventKind = "Create Tweet"
	KindCreateRetweet   EventKind = "Create Retweet"
	KindUpdate          EventKind = "Update"
	KindUpdateRetweetRef EventKind = "Update Retweet"
	KindDelete          EventKind = "Delete"
	KindLike            EventKind = "Like"
	KindUnlike          EventKind = "Unlike"
	KindComment         EventKind = "Comment"
	KindDeleteComment   EventKind = "Delete Comment"
	KindBlockByUser     EventKind = "Block by user"
	KindBlockByAdmin    EventKind = "Block by admin"
	KindUnfollow        EventKind = "Unfollow"
	KindFollow          EventKind = "Follow"
	KindEditProfile     EventKind = "Edit Profile"
)

// Event is a cache notification. Events are immutable and delivered
// at-least-once; every handler must tolerate re-application.
//
// Which fields are set depends on the kind: tweet-level events carry Tweet,
// relationship and profile events carry UserID/RefUserID.
type Event struct {
	Kind      EventKind `json:"type"`
	Tweet     *Tweet    `json:"tweet,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	RefUserID string    `json:"refUserId,omitempty"`
}
