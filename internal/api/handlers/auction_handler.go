package handlers

import (
	"net/http"

	"auction-core/internal/domain"
	"auction-core/internal/services"
	"auction-core/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuctionHandler struct {
	lifecycle *services.LifecycleManager
	bids      *services.BidAcceptor
	query     *services.QueryService
	log       logger.Logger
}

func NewAuctionHandler(lifecycle *services.LifecycleManager, bids *services.BidAcceptor,
	query *services.QueryService, log logger.Logger) *AuctionHandler {
	return &AuctionHandler{
		lifecycle: lifecycle,
		bids:      bids,
		query:     query,
		log:       log,
	}
}

// RegisterRoutes mounts every auction route on g. Routes keyed by auction id
// have a twin keyed by catalogue id, which addresses the item's latest auction.
func (h *AuctionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auctions", h.CreateAuction)

	for _, prefix := range []string{"/auctions/:id", "/catalogue/:catalogue_id"} {
		g.GET(prefix, h.GetAuction)
		g.GET(prefix+"/end", h.GetAuctionEnd)
		g.GET(prefix+"/bids", h.GetBidHistory)
		g.POST(prefix+"/bids", h.PlaceBid)
		g.GET(prefix+"/winner", h.GetWinner)
		g.POST(prefix+"/close", h.CloseAuction)
	}
}

func (h *AuctionHandler) CreateAuction(c echo.Context) error {
	var req CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
	}

	auction, err := h.lifecycle.StartAuction(c.Request().Context(), services.StartAuctionRequest{
		CatalogueID:    req.CatalogueID,
		StartingAmount: req.StartingAmount,
		EndTime:        req.EndTime,
	})
	if err != nil {
		return h.fail(c, "CreateAuction", err)
	}

	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "auction started",
		Data:    toAuctionResponse(auction),
	})
}

func (h *AuctionHandler) GetAuction(c echo.Context) error {
	view, err := h.query.GetAuctionStatus(c.Request().Context(), auctionRef(c))
	if err != nil {
		return h.fail(c, "GetAuction", err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: toStatusResponse(view)})
}

func (h *AuctionHandler) GetAuctionEnd(c echo.Context) error {
	ref := auctionRef(c)
	end, err := h.query.GetAuctionEnd(c.Request().Context(), ref)
	if err != nil {
		return h.fail(c, "GetAuctionEnd", err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: AuctionEndResponse{AuctionID: ref.AuctionID, EndTime: end}})
}

func (h *AuctionHandler) GetBidHistory(c echo.Context) error {
	bids, err := h.query.GetBidHistory(c.Request().Context(), auctionRef(c))
	if err != nil {
		return h.fail(c, "GetBidHistory", err)
	}

	out := make([]*BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, toBidResponse(b))
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: out})
}

func (h *AuctionHandler) GetWinner(c echo.Context) error {
	view, err := h.query.GetAuctionWinner(c.Request().Context(), auctionRef(c))
	if err != nil {
		return h.fail(c, "GetWinner", err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: toBidResponse(&view.Bid)})
}

func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
	}

	result, err := h.bids.PlaceBid(c.Request().Context(), services.PlaceBidRequest{
		Auction: auctionRef(c),
		Bidder: domain.BidderInfo{
			UserID:    req.UserID,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		Amount: req.Amount,
	})
	if err != nil {
		return h.fail(c, "PlaceBid", err)
	}

	switch r := result.(type) {
	case *domain.BidAccepted:
		return c.JSON(http.StatusCreated, Response{
			Success: true,
			Message: "bid accepted",
			Data:    toBidResponse(&r.Bid),
		})
	case *domain.BidRejected:
		body := BidRejectedResponse{Reason: r.Reason.String()}
		if !r.CurrentAmount.IsZero() {
			body.CurrentAmount = r.CurrentAmount.StringFixed(domain.AmountScale)
		}
		return c.JSON(MapRejectionToHTTP(r.Reason), Response{Message: r.Detail, Data: body})
	}
	return c.JSON(http.StatusInternalServerError, Response{Message: "internal server error"})
}

func (h *AuctionHandler) CloseAuction(c echo.Context) error {
	result, err := h.lifecycle.CloseAuction(c.Request().Context(), auctionRef(c))
	if err != nil {
		return h.fail(c, "CloseAuction", err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "auction " + result.Outcome.String(),
		Data: CloseResponse{
			Outcome: result.Outcome.String(),
			Auction: toAuctionResponse(&result.Auction),
			Winner:  toBidResponse(result.Winner),
		},
	})
}

func auctionRef(c echo.Context) domain.AuctionRef {
	return domain.AuctionRef{
		AuctionID:   c.Param("id"),
		CatalogueID: c.Param("catalogue_id"),
	}
}
