package socket

import (
	"github.com/zishang520/socket.io/socket"
)

type (
	// SocketManager A wrapper around the socket.io server. All Mosaic namespaces
	// are anonymous; guests join a collage with its code and never authenticate.
	SocketManager interface {
		// Server A reference to the underlying socket.io server.
		Server() *socket.Server
	}

	socketManager struct {
		server *socket.Server
	}
)

func CreateSocketManager() SocketManager {
	return &socketManager{
		server: socket.NewServer(nil, nil),
	}
}

func (m *socketManager) Server() *socket.Server {
	return m.server
}
