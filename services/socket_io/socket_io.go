package socket_io

import (
	"SmashSessions/services/presentation"
	"SmashSessions/services/sessions"
	socketio_types "SmashSessions/services/socket_io/types"
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the Gin router. Gateways connect
// with their JWT, subscribe to the sessions room and get notified whenever
// a session is created, updated or deleted, so rendered embeds stay fresh.
func (sio *MySocketServer) Start(router *gin.Engine, svc *sessions.Service) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and support
	// slower networks.
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, userID := VerifyUserConnection(client)
		if !success {
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(userID, client)
		fmt.Println("Gateway connected:", userID)

		// Receive session lifecycle events from now on
		client.On("subscribe_sessions", func(args ...interface{}) {
			client.Join(socket.Room(socketio_types.SessionsRoom))
			client.Emit("subscribed", gin.H{"room": socketio_types.SessionsRoom})
		})

		// Answer with the current list view, same shape as GET /sessions
		client.On("get_session_list", func(args ...interface{}) {
			future, err := svc.AllFutureSessions(context.Background())
			if err != nil {
				client.Emit("error", gin.H{"error": "could not list sessions"})
				return
			}
			client.Emit("session_list", presentation.BuildListView(future))
		})

		client.On("disconnecting", func(args ...interface{}) {
			(*socketio_types.SocketServer)(sio).RemoveConnection(userID)
		})
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	fmt.Println("Socket server started")
}
