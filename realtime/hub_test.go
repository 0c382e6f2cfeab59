package realtime

import (
	"testing"

	"mosaicBackend/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReportsStatusSequence(t *testing.T) {
	feed := CreateHub[string]()

	statuses := make([]types.SubscriptionStatus, 0)
	subscription := feed.Subscribe("scope-a", func(ChangeEvent[string]) {}, func(status types.SubscriptionStatus) {
		statuses = append(statuses, status)
	})

	assert.Equal(t, []types.SubscriptionStatus{types.Connecting, types.Subscribed}, statuses)

	subscription.Unsubscribe()
	assert.Equal(t, []types.SubscriptionStatus{types.Connecting, types.Subscribed, types.Closed}, statuses)
}

func TestPublishReachesMatchingScopeOnly(t *testing.T) {
	feed := CreateHub[string]()

	var receivedA, receivedB []string
	feed.Subscribe("scope-a", func(event ChangeEvent[string]) {
		receivedA = append(receivedA, *event.New)
	}, nil)
	feed.Subscribe("scope-b", func(event ChangeEvent[string]) {
		receivedB = append(receivedB, *event.New)
	}, nil)

	payload := "hello"
	feed.Publish("scope-a", ChangeEvent[string]{Type: types.Insert, New: &payload})

	assert.Equal(t, []string{"hello"}, receivedA)
	assert.Empty(t, receivedB)
}

func TestPublishReachesAllSubscribersOfScope(t *testing.T) {
	feed := CreateHub[string]()

	deliveries := 0
	for i := 0; i < 3; i++ {
		feed.Subscribe("scope-a", func(ChangeEvent[string]) { deliveries++ }, nil)
	}

	payload := "fanout"
	feed.Publish("scope-a", ChangeEvent[string]{Type: types.Insert, New: &payload})

	assert.Equal(t, 3, deliveries)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	feed := CreateHub[string]()

	deliveries := 0
	subscription := feed.Subscribe("scope-a", func(ChangeEvent[string]) { deliveries++ }, nil)

	payload := "first"
	feed.Publish("scope-a", ChangeEvent[string]{Type: types.Insert, New: &payload})
	require.Equal(t, 1, deliveries)

	subscription.Unsubscribe()
	feed.Publish("scope-a", ChangeEvent[string]{Type: types.Insert, New: &payload})
	assert.Equal(t, 1, deliveries)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	feed := CreateHub[string]()

	closedReports := 0
	subscription := feed.Subscribe("scope-a", func(ChangeEvent[string]) {}, func(status types.SubscriptionStatus) {
		if status == types.Closed {
			closedReports++
		}
	})

	subscription.Unsubscribe()
	subscription.Unsubscribe()

	assert.Equal(t, 1, closedReports)
}

func TestPublishWithoutSubscribersIsSilent(t *testing.T) {
	feed := CreateHub[string]()

	payload := "nobody"
	assert.NotPanics(t, func() {
		feed.Publish("empty-scope", ChangeEvent[string]{Type: types.Delete, Old: &payload})
	})
}
