package websocket

import (
	"sync"

	"auction-core/internal/domain"
	"auction-core/pkg/logger"
)

// ConnectionManager tracks watcher connections by auction and by user. A user
// holds at most one connection per auction; registering again replaces it.
type ConnectionManager struct {
	connections map[string]map[string]domain.WebSocketConnection // auctionID -> userID -> connection
	userConns   map[string]map[string]domain.WebSocketConnection // userID -> auctionID -> connection
	mutex       sync.RWMutex
	log         logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]map[string]domain.WebSocketConnection),
		userConns:   make(map[string]map[string]domain.WebSocketConnection),
		log:         log,
	}
}

func (cm *ConnectionManager) RegisterConnection(userID, auctionID string, conn domain.WebSocketConnection) error {
	cm.mutex.Lock()
	previous := cm.connections[auctionID][userID]
	cm.put(userID, auctionID, conn)
	cm.mutex.Unlock()

	if previous != nil && previous != conn {
		if err := previous.Close(); err != nil {
			cm.log.Debug("Failed to close replaced connection", "user_id", userID,
				"auction_id", auctionID, "error", err)
		}
	}

	cm.log.Info("Connection registered", "user_id", userID, "auction_id", auctionID)
	return nil
}

func (cm *ConnectionManager) UnregisterConnection(userID, auctionID string) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.remove(userID, auctionID)
	cm.log.Info("Connection unregistered", "user_id", userID, "auction_id", auctionID)
	return nil
}

// Release unregisters conn only if it is still the registered connection for
// its user and auction, so a replaced connection cannot evict its successor.
func (cm *ConnectionManager) Release(conn domain.WebSocketConnection) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if cm.connections[conn.AuctionID()][conn.UserID()] != conn {
		return
	}
	cm.remove(conn.UserID(), conn.AuctionID())
	cm.log.Info("Connection unregistered", "user_id", conn.UserID(), "auction_id", conn.AuctionID())
}

func (cm *ConnectionManager) CloseAndUnregisterConnections(auctionID string) error {
	cm.mutex.Lock()
	auctionConns := cm.connections[auctionID]
	for userID := range auctionConns {
		cm.remove(userID, auctionID)
	}
	cm.mutex.Unlock()

	for userID, conn := range auctionConns {
		if err := conn.Close(); err != nil {
			cm.log.Error("Failed to close connection", "user_id", userID,
				"auction_id", auctionID, "error", err)
		}
	}

	cm.log.Info("Connections closed for auction", "auction_id", auctionID, "count", len(auctionConns))
	return nil
}

func (cm *ConnectionManager) GetConnectionsForAuction(auctionID string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	connections := make([]domain.WebSocketConnection, 0, len(cm.connections[auctionID]))
	for _, conn := range cm.connections[auctionID] {
		connections = append(connections, conn)
	}
	return connections
}

func (cm *ConnectionManager) GetConnectionsForUser(userID string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	connections := make([]domain.WebSocketConnection, 0, len(cm.userConns[userID]))
	for _, conn := range cm.userConns[userID] {
		connections = append(connections, conn)
	}
	return connections
}

// BroadcastToAuction sends message to every watcher of the auction. A failed
// send is logged and does not stop delivery to the others.
func (cm *ConnectionManager) BroadcastToAuction(auctionID string, message interface{}) error {
	connections := cm.GetConnectionsForAuction(auctionID)
	cm.log.Debug("Broadcasting to auction", "auction_id", auctionID, "connections", len(connections))

	for _, conn := range connections {
		if err := conn.Send(message); err != nil {
			cm.log.Error("Failed to send message", "user_id", conn.UserID(),
				"auction_id", auctionID, "error", err)
		}
	}
	return nil
}

func (cm *ConnectionManager) NotifyUser(userID string, message interface{}) error {
	for _, conn := range cm.GetConnectionsForUser(userID) {
		if err := conn.Send(message); err != nil {
			cm.log.Error("Failed to send message", "user_id", userID, "error", err)
		}
	}
	return nil
}

func (cm *ConnectionManager) put(userID, auctionID string, conn domain.WebSocketConnection) {
	if cm.connections[auctionID] == nil {
		cm.connections[auctionID] = make(map[string]domain.WebSocketConnection)
	}
	cm.connections[auctionID][userID] = conn

	if cm.userConns[userID] == nil {
		cm.userConns[userID] = make(map[string]domain.WebSocketConnection)
	}
	cm.userConns[userID][auctionID] = conn
}

func (cm *ConnectionManager) remove(userID, auctionID string) {
	if auctionConns, ok := cm.connections[auctionID]; ok {
		delete(auctionConns, userID)
		if len(auctionConns) == 0 {
			delete(cm.connections, auctionID)
		}
	}
	if userConns, ok := cm.userConns[userID]; ok {
		delete(userConns, auctionID)
		if len(userConns) == 0 {
			delete(cm.userConns, userID)
		}
	}
}
