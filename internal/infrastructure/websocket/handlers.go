package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"auction-core/internal/domain"
	"auction-core/internal/services"
	"auction-core/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientMessage struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

type bidResultMessage struct {
	Type          string `json:"type"`
	RequestID     string `json:"request_id,omitempty"`
	Accepted      bool   `json:"accepted"`
	BidID         string `json:"bid_id,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Message       string `json:"message,omitempty"`
	CurrentAmount string `json:"current_amount,omitempty"`
}

type errorMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// WebSocketHandler lets bidders watch an auction and bid on it over one
// socket. Results of the caller's own bids come back as bid_result; everyone
// else's arrive through the event listener as bid_update.
type WebSocketHandler struct {
	bids        *services.BidAcceptor
	query       *services.QueryService
	connManager *ConnectionManager
	log         logger.Logger
}

func NewWebSocketHandler(bids *services.BidAcceptor, query *services.QueryService,
	connManager *ConnectionManager, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		bids:        bids,
		query:       query,
		connManager: connManager,
		log:         log,
	}
}

// RegisterRoutes mounts the gateway on r.
func (h *WebSocketHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ws/auctions/{auctionID}", h.HandleConnection).Methods(http.MethodGet)
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["auctionID"]

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id required", http.StatusBadRequest)
		return
	}
	username := r.URL.Query().Get("username")
	if username == "" {
		username = userID
	}

	status, err := h.query.GetAuctionStatus(r.Context(), domain.AuctionRef{AuctionID: auctionID})
	switch {
	case errors.Is(err, domain.ErrAuctionNotFound):
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	case domain.IsTransient(err):
		h.log.Warn("Auction lookup failed", "auction_id", auctionID, "error", err)
		http.Error(w, "try again later", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.log.Error("Failed to find auction", "auction_id", auctionID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if status.Auction.Status == domain.AuctionClosed || status.Remaining <= 0 {
		h.log.Info("Rejected connection - auction has ended", "auction_id", auctionID)
		http.Error(w, "auction has already ended", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	wsConn := NewConnection(conn, userID, auctionID)
	if err := h.connManager.RegisterConnection(userID, auctionID, wsConn); err != nil {
		h.log.Error("Failed to register connection", "error", err)
		_ = wsConn.Close()
		return
	}

	if err := wsConn.Send(stateMessage(status)); err != nil {
		h.log.Debug("Failed to send auction state", "user_id", userID, "error", err)
	}

	go h.handleMessages(wsConn, domain.BidderInfo{UserID: userID, Username: username})
}

func (h *WebSocketHandler) handleMessages(conn *Connection, bidder domain.BidderInfo) {
	defer func() {
		h.connManager.Release(conn)
		_ = conn.Close()
	}()

	for {
		_, payload, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("Connection read failed", "user_id", bidder.UserID, "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.send(conn, errorMessage{Type: "error", Message: "malformed message"})
			continue
		}

		switch msg.Type {
		case "place_bid":
			h.handleBidMessage(conn, bidder, msg)
		case "ping":
			h.send(conn, map[string]string{"type": "pong"})
		default:
			h.send(conn, errorMessage{Type: "error", RequestID: msg.RequestID, Message: "unknown message type"})
		}
	}
}

func (h *WebSocketHandler) handleBidMessage(conn *Connection, bidder domain.BidderInfo, msg clientMessage) {
	result, err := h.bids.PlaceBid(context.Background(), services.PlaceBidRequest{
		Auction: domain.AuctionRef{AuctionID: conn.AuctionID()},
		Bidder:  bidder,
		Amount:  msg.Amount,
	})
	if err != nil {
		h.send(conn, errorMessage{
			Type:      "error",
			RequestID: msg.RequestID,
			Message:   "failed to place bid",
			Retryable: domain.IsTransient(err),
		})
		return
	}

	reply := bidResultMessage{Type: "bid_result", RequestID: msg.RequestID}
	switch r := result.(type) {
	case *domain.BidAccepted:
		reply.Accepted = true
		reply.BidID = r.Bid.ID
		reply.Amount = r.Bid.Amount.StringFixed(domain.AmountScale)
	case *domain.BidRejected:
		reply.Reason = r.Reason.String()
		reply.Message = r.Detail
		if !r.CurrentAmount.IsZero() {
			reply.CurrentAmount = r.CurrentAmount.StringFixed(domain.AmountScale)
		}
	}
	h.send(conn, reply)
}

func (h *WebSocketHandler) send(conn *Connection, message interface{}) {
	if err := conn.Send(message); err != nil {
		h.log.Debug("Failed to send message", "user_id", conn.UserID(), "error", err)
	}
}

func stateMessage(status *services.AuctionStatusView) map[string]interface{} {
	msg := map[string]interface{}{
		"type":        "auction_state",
		"auction_id":  status.Auction.ID,
		"status":      status.Auction.Status,
		"current_bid": status.CurrentAmount.StringFixed(domain.AmountScale),
		"end_time":    status.Auction.EndTime,
	}
	if status.LeadingBid != nil {
		msg["current_winner"] = status.LeadingBid.Bidder.UserID
	}
	return msg
}
