package activity

import "time"

// Event types published to the marketplace activity queue.
const (
	ListingCreated   = "listing_created"
	OrderPlaced      = "order_placed"
	BlogPublished    = "blog_published"
	FundraiserOpened = "fundraiser_opened"
	DonationReceived = "donation_received"
	ProfileUpdated   = "profile_updated"
)

// Event is the message body carried over RabbitMQ. Document holds the search
// payload for event types the worker mirrors into Elasticsearch.
type Event struct {
	Type       string         `json:"type"`
	ActorID    string         `json:"actor_id"`
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Document   map[string]any `json:"document,omitempty"`
}
