package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	. "crmchat/internal/adapter/http/helper"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/model/request"
	"crmchat/internal/core/model/response"
	"crmchat/internal/core/port"
	"crmchat/pkg/config"
)

type DealHandler struct {
	base
	svc port.DealService
}

func NewDealHandler(svc port.DealService, logger *config.LokiLogger, exposeErrors bool) *DealHandler {
	return &DealHandler{
		base: newBase(logger, exposeErrors),
		svc:  svc,
	}
}

func (h *DealHandler) ListDeals(c *gin.Context) {
	ctx := c.Request.Context()

	deals, err := h.svc.List(ctx)

	if err != nil {
		h.fail(c, ctx, "deal.List", err, msgDealNotFound)
		return
	}

	SendOK(c, response.DealsResponse{Status: response.StatusOK, Deals: deals})
}

func (h *DealHandler) CreateDeal(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.CreateDealRequest

	if !h.bind(c, &params, msgDealRequired) {
		return
	}

	deal, err := h.svc.Create(ctx, params.ToDomain())

	if err != nil {
		h.fail(c, ctx, "deal.Create", err, msgDealNotFound)
		return
	}

	SendOK(c, response.DealResponse{Status: response.StatusOK, Deal: deal})
}

// UpdateDeal applies the keys present in the body. A key sent as null
// clears the column. An empty patch is rejected before the id is looked at,
// and an :id that is not an integer names no deal.
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	ctx := c.Request.Context()

	var patch request.UpdateDealRequest

	if !h.bind(c, &patch, msgNoUpdateData) {
		return
	}

	id, _ := dealID(c)

	deal, err := h.svc.Update(ctx, id, patch)

	if errors.Is(err, domain.ErrEmptyPatch) {
		SendValidationError(c, msgNoUpdateData, err)
		return
	}

	if err != nil {
		h.fail(c, ctx, "deal.Update", err, msgDealNotFound)
		return
	}

	SendOK(c, response.DealResponse{Status: response.StatusOK, Deal: deal})
}

func (h *DealHandler) DeleteDeal(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := dealID(c)

	if !ok {
		SendNotFoundError(c, msgDealNotFound)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		h.fail(c, ctx, "deal.Delete", err, msgDealNotFound)
		return
	}

	SendOK(c, response.DeletedResponse{Status: response.StatusOK, ID: id})
}

// dealID reads :id. Anything that is not an integer names no deal and
// comes back as 0, which no stored deal uses.
func dealID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
