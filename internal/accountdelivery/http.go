// Package accountdelivery manages delivery layer of wallet accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/middleware"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
	"github.com/maktab-app/maktab-wallet/pkg/tokenpkg"
	"github.com/maktab-app/maktab-wallet/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
	Close(ctx context.Context, id int32) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to get the authenticated user's wallet.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	acc, err := h.service.GetByOwner(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{acc},
	}

	gctx.JSON(http.StatusOK, res)
}

// Close handles http request to close the authenticated user's wallet.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	acc, err := h.service.GetByOwner(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	closed, err := h.service.Close(ctx, acc.ID)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountClosed:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{closed},
	}

	gctx.JSON(http.StatusOK, res)
}
