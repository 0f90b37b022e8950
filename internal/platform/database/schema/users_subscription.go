package schema

// UserSubscriptionTable represents the 'users.subscription' table.
//
// A directed edge: SubscriberID follows SubscribedID.
type UserSubscriptionTable struct {
	Table        string
	SubscriberID string
	SubscribedID string
	CreatedAt    string
}

// UserSubscription is the schema definition for users.subscription
var UserSubscription = UserSubscriptionTable{
	Table:        "users.subscription",
	SubscriberID: "subscriberid",
	SubscribedID: "subscribedid",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t UserSubscriptionTable) Columns() []string {
	return []string{t.SubscriberID, t.SubscribedID, t.CreatedAt}
}
