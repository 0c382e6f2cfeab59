package socket

import (
	"strings"
	"sync"

	"mosaicBackend/realtime"
	"mosaicBackend/types"

	"github.com/charmbracelet/log"
	socketio "github.com/zishang520/socket.io/socket"
)

type (
	// FeedNamespace Mirrors an in-process change feed into a socket.io namespace.
	//
	// Clients connect anonymously and emit a 'subscribe' event carrying a collage
	// id. From then on they receive every row change of that collage as a 'data'
	// event and status transitions as 'status' events. A second 'subscribe'
	// replaces the prior scope; at most one feed subscription exists per client
	// at any time, so duplicated subscriptions can never double-deliver.
	FeedNamespace interface {
		// SubscriberCount The number of clients currently subscribed to a scope.
		SubscriberCount(scope string) int
	}

	feedNamespace[T any] struct {
		feedHub       realtime.Feed[T]
		namespaceName string
		namespace     socketio.NamespaceInterface

		clients      map[socketio.SocketId]*feedClient
		clientsMutex *sync.Mutex
	}

	feedClient struct {
		scope        string
		subscription realtime.Subscription
	}
)

// CreateFeedNamespace Registers a change-feed namespace on the socket manager.
// The namespace path is concatenated with slashes (e.g. [feed, photos] ->
// /feed/photos).
func CreateFeedNamespace[T any](
	socketManager SocketManager,
	feedHub realtime.Feed[T],
	namespacePath ...string,
) FeedNamespace {
	manager := &feedNamespace[T]{
		feedHub:      feedHub,
		clients:      make(map[socketio.SocketId]*feedClient),
		clientsMutex: &sync.Mutex{},
	}

	manager.namespaceName = "/" + strings.Join(namespacePath, "/")
	manager.namespace = socketManager.Server().Of(manager.namespaceName, nil)

	_ = manager.namespace.On("connection", manager.handleConnection)

	return manager
}

func (m *feedNamespace[T]) SubscriberCount(scope string) int {
	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()

	count := 0
	for _, client := range m.clients {
		if client.scope == scope {
			count++
		}
	}

	return count
}

func (m *feedNamespace[T]) handleConnection(clients ...any) {
	client, ok := clients[0].(*socketio.Socket)

	if !ok {
		log.Errorf("Received invalid connection: %+v", clients)
		return
	}

	log.Info("Client connected to feed namespace", "namespace", m.namespaceName)

	_ = client.On("subscribe", func(raw ...any) {
		scope, ok := raw[0].(string)
		if !ok || scope == "" {
			return
		}

		m.subscribeClient(client, scope)
	})

	_ = client.On("unsubscribe", func(raw ...any) {
		m.dropClient(client.Id())
	})

	_ = client.On("disconnect", func(raw ...any) {
		log.Info("Client disconnected from feed namespace", "namespace", m.namespaceName)
		m.dropClient(client.Id())
	})
}

func (m *feedNamespace[T]) subscribeClient(client *socketio.Socket, scope string) {
	// Tear down any prior subscription first so a re-subscribe can never leave
	// two live feeds delivering to the same client.
	m.dropClient(client.Id())

	subscription := m.feedHub.Subscribe(
		scope,
		func(event realtime.ChangeEvent[T]) {
			if err := client.Emit("data", event); err != nil {
				log.Warnf("Failed to emit feed event to client: %s", err.Error())
			}
		},
		func(status types.SubscriptionStatus) {
			_ = client.Emit("status", status.String())
		},
	)

	m.clientsMutex.Lock()
	m.clients[client.Id()] = &feedClient{
		scope:        scope,
		subscription: subscription,
	}
	m.clientsMutex.Unlock()

	log.Info("Client subscribed to feed scope", "namespace", m.namespaceName, "scope", scope)
}

func (m *feedNamespace[T]) dropClient(clientId socketio.SocketId) {
	m.clientsMutex.Lock()
	client, exists := m.clients[clientId]
	delete(m.clients, clientId)
	m.clientsMutex.Unlock()

	if exists {
		client.subscription.Unsubscribe()
	}
}
