package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"

	"auction-core/pkg/logger"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	userID    string
	auctionID string
	sendErr   error

	mu     sync.Mutex
	sent   []interface{}
	closed int
}

func newFakeConn(userID, auctionID string) *fakeConn {
	return &fakeConn{userID: userID, auctionID: auctionID}
}

func (c *fakeConn) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, message)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeConn) UserID() string    { return c.userID }
func (c *fakeConn) AuctionID() string { return c.auctionID }

func TestConnectionManagerRegisterAndLookup(t *testing.T) {
	cm := NewConnectionManager(logger.NewNop())

	a1 := newFakeConn("u1", "a-1")
	a2 := newFakeConn("u1", "a-2")
	b1 := newFakeConn("u2", "a-1")
	for _, c := range []*fakeConn{a1, a2, b1} {
		require.NoError(t, cm.RegisterConnection(c.userID, c.auctionID, c))
	}

	require.Len(t, cm.GetConnectionsForAuction("a-1"), 2)
	require.Len(t, cm.GetConnectionsForAuction("a-2"), 1)
	require.Len(t, cm.GetConnectionsForUser("u1"), 2)
	require.Empty(t, cm.GetConnectionsForAuction("missing"))

	require.NoError(t, cm.UnregisterConnection("u1", "a-1"))
	require.Len(t, cm.GetConnectionsForAuction("a-1"), 1)
	require.Len(t, cm.GetConnectionsForUser("u1"), 1)
}

func TestConnectionManagerReplaceClosesPrevious(t *testing.T) {
	cm := NewConnectionManager(logger.NewNop())

	first := newFakeConn("u1", "a-1")
	second := newFakeConn("u1", "a-1")
	require.NoError(t, cm.RegisterConnection("u1", "a-1", first))
	require.NoError(t, cm.RegisterConnection("u1", "a-1", second))

	require.Equal(t, 1, first.closed)
	require.Zero(t, second.closed)

	// the old socket's read loop ending must not evict its replacement
	cm.Release(first)
	require.Len(t, cm.GetConnectionsForAuction("a-1"), 1)

	cm.Release(second)
	require.Empty(t, cm.GetConnectionsForAuction("a-1"))
	require.Empty(t, cm.GetConnectionsForUser("u1"))
}

func TestConnectionManagerBroadcastSkipsFailedSends(t *testing.T) {
	cm := NewConnectionManager(logger.NewNop())

	broken := newFakeConn("u1", "a-1")
	broken.sendErr = errors.New("broken pipe")
	healthy := newFakeConn("u2", "a-1")
	other := newFakeConn("u3", "a-2")
	for _, c := range []*fakeConn{broken, healthy, other} {
		require.NoError(t, cm.RegisterConnection(c.userID, c.auctionID, c))
	}

	msg := map[string]string{"type": "bid_update"}
	require.NoError(t, cm.BroadcastToAuction("a-1", msg))
	require.Equal(t, []interface{}{msg}, healthy.sent)
	require.Empty(t, other.sent)

	require.NoError(t, NewNotifier(cm).NotifyUser(context.Background(), "u3", msg))
	require.Len(t, other.sent, 1)
}

func TestConnectionManagerCloseAndUnregister(t *testing.T) {
	cm := NewConnectionManager(logger.NewNop())

	c1 := newFakeConn("u1", "a-1")
	c2 := newFakeConn("u2", "a-1")
	keep := newFakeConn("u1", "a-2")
	for _, c := range []*fakeConn{c1, c2, keep} {
		require.NoError(t, cm.RegisterConnection(c.userID, c.auctionID, c))
	}

	require.NoError(t, cm.CloseAndUnregisterConnections("a-1"))
	require.Equal(t, 1, c1.closed)
	require.Equal(t, 1, c2.closed)
	require.Zero(t, keep.closed)
	require.Empty(t, cm.GetConnectionsForAuction("a-1"))
	require.Len(t, cm.GetConnectionsForUser("u1"), 1)
}

func TestNotifierHonoursCancelledContext(t *testing.T) {
	cm := NewConnectionManager(logger.NewNop())
	conn := newFakeConn("u1", "a-1")
	require.NoError(t, cm.RegisterConnection("u1", "a-1", conn))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewNotifier(cm).BroadcastToAuction(ctx, "a-1", "x"), context.Canceled)
	require.Empty(t, conn.sent)
}
