package domain

import "time"

// Subscriber is a mailing-list entry. Subscribing is independent of having
// an account.
type Subscriber struct {
	Email        string    `json:"mail"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
