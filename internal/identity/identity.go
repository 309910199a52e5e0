package identity

// Kind discriminates the two identity variants. Exactly one variant is active
// per connection and it never changes during the connection's lifetime.
type Kind int

const (
	KindMember Kind = iota
	KindGuest
)

// Identity is the display identity a connection acts under. Member identities
// carry UserID, guest identities carry GuestID. The admin capability is not
// part of the identity; it is fetched lazily from the store when moderation
// is attempted.
type Identity struct {
	Kind        Kind
	UserID      int64
	GuestID     string
	DisplayName string
}

func (id Identity) IsGuest() bool {
	return id.Kind == KindGuest
}

// Key returns the stable identifier string used for logging and typing
// payloads: the user id for members, the opaque guest id for guests.
func (id Identity) Key() string {
	if id.Kind == KindGuest {
		return id.GuestID
	}
	return formatUserID(id.UserID)
}
