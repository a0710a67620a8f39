// Package domain provides the back-office records managed by listkit
// listing screens: collections, statuses, columns and sort fields.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrRecordNotFound is returned when a record is not found.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidCollection is returned for an unknown collection name.
	ErrInvalidCollection = errors.New("invalid collection")

	// ErrInvalidStatus is returned for a status the collection does not allow.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrReferenced is returned when removing a record another record points at.
	ErrReferenced = errors.New("record is referenced")
)

// Collection names one listing screen.
type Collection string

const (
	CollectionProducts      Collection = "products"
	CollectionOrders        Collection = "orders"
	CollectionCarts         Collection = "carts"
	CollectionPosts         Collection = "posts"
	CollectionComments      Collection = "comments"
	CollectionMenus         Collection = "menus"
	CollectionPromotions    Collection = "promotions"
	CollectionNotifications Collection = "notifications"
	CollectionMedia         Collection = "media"
)

var collections = []Collection{
	CollectionProducts,
	CollectionOrders,
	CollectionCarts,
	CollectionPosts,
	CollectionComments,
	CollectionMenus,
	CollectionPromotions,
	CollectionNotifications,
	CollectionMedia,
}

// Collections returns every known collection in display order.
func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

// IsValid checks if the collection is known.
func (c Collection) IsValid() bool {
	for _, known := range collections {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the collection.
func (c Collection) String() string {
	return string(c)
}

// ParseCollection converts a string to a Collection.
func ParseCollection(s string) (Collection, error) {
	c := Collection(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCollection, s)
	}
	return c, nil
}

// Status is the lifecycle state of a record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusArchived  Status = "archived"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusOpen      Status = "open"
	StatusAbandoned Status = "abandoned"
	StatusConverted Status = "converted"
	StatusPublished Status = "published"
	StatusHidden    Status = "hidden"
	StatusDismissed Status = "dismissed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Statuses returns the statuses a collection allows. The first one is the
// default for new records.
func Statuses(c Collection) []Status {
	switch c {
	case CollectionOrders:
		return []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}
	case CollectionCarts:
		return []Status{StatusOpen, StatusAbandoned, StatusConverted}
	case CollectionPosts, CollectionComments:
		return []Status{StatusDraft, StatusPublished, StatusHidden}
	case CollectionNotifications:
		return []Status{StatusActive, StatusDismissed}
	default:
		return []Status{StatusDraft, StatusActive, StatusArchived}
	}
}

// DefaultStatus returns the status given to new records of c.
func DefaultStatus(c Collection) Status {
	return Statuses(c)[0]
}

// ParseStatus validates s against the statuses of c.
func ParseStatus(c Collection, s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, allowed := range Statuses(c) {
		if status == allowed {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q for %s", ErrInvalidStatus, s, c)
}

// Record is one row of a listing screen.
type Record struct {
	ID         string
	Collection Collection
	Name       string
	Status     Status
	Amount     float64
	Quantity   int
	// Ref is the id of another record this one points at, e.g. the
	// product an order line was placed for.
	Ref       string
	CreatedAt time.Time
}

// Validate checks the fields a backend requires before insert.
func (r Record) Validate() error {
	if !r.Collection.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, r.Collection)
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Status != "" {
		if _, err := ParseStatus(r.Collection, string(r.Status)); err != nil {
			return err
		}
	}
	if r.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// RecordID is the id accessor handed to list views.
func RecordID(r Record) string {
	return r.ID
}
