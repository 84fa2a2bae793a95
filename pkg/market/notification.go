package market

import (
	"github.com/google/uuid"
	"github.com/nspcc-dev/tokenmart/pkg/util"
)

// Notification names.
const (
	// CollectionCreated is emitted by CreateCollection.
	CollectionCreated = "CollectionCreated"
	// TokenPurchased is emitted by Purchase.
	TokenPurchased = "TokenPurchased"
)

// Notification is an event emitted by a successfully committed call.
type Notification struct {
	// ID is a unique event identifier.
	ID uuid.UUID
	// Name is one of the notification name constants.
	Name string
	// Collection is the collection the event concerns.
	Collection util.Uint160
	// Actor is the account that triggered the event: the service for
	// CollectionCreated, the buyer for TokenPurchased.
	Actor util.Uint160
	// TokenID and Amount are set for TokenPurchased only.
	TokenID uint64
	Amount  uint64
}

// notify appends the event to the in-memory log. It is called only after
// the enclosing call has persisted, so the log never contains events of
// rolled back calls.
func (m *Marketplace) notify(n Notification) {
	n.ID = uuid.New()
	m.notifications = append(m.notifications, n)
}

// Notifications returns all events emitted since the marketplace started,
// oldest first.
func (m *Marketplace) Notifications() []Notification {
	res := make([]Notification, len(m.notifications))
	copy(res, m.notifications)
	return res
}
