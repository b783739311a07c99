// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/middleware"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
	"github.com/maktab-app/maktab-wallet/pkg/tokenpkg"
	"github.com/maktab-app/maktab-wallet/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromUsername string, arg domain.TransferParams) (domain.TransferTxResult, error)
	TopUp(ctx context.Context, username string, amount decimal.Decimal) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type createRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
	Kind          string `json:"kind" binding:"required,oneof=debit lesson-payment"`
	Description   string `json:"description" binding:"max=255"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidOwner:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case domain.ErrInvalidAmount,
		domain.ErrSelfTransfer,
		domain.ErrInsufficientBalance,
		domain.ErrUnsupportedKind,
		domain.ErrAccountClosed:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrBusy:
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.TransferParams{
		FromAccountID: &req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		Kind:          domain.Kind(req.Kind),
		Description:   req.Description,
	}

	result, err := h.service.Transfer(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	res := response{
		Data: data{result},
	}

	gctx.JSON(http.StatusOK, res)
}

type topUpRequest struct {
	Amount string `json:"amount" binding:"required,topupamount"`
}

// TopUp handles http request to credit the authenticated user's wallet.
func (h *Handler) TopUp(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req topUpRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	// The binding already checked the 1..1000 range and precision.
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.TopUp(ctx, authPayload.Username, amount)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	res := response{
		Data: data{result},
	}

	gctx.JSON(http.StatusOK, res)
}
