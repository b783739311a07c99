// Package entrydelivery manages delivery layer of ledger entries.
package entrydelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/middleware"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
	"github.com/maktab-app/maktab-wallet/pkg/tokenpkg"
	"github.com/maktab-app/maktab-wallet/pkg/web"
)

// ErrAdminOnly indicates that the endpoint requires the admin role.
var ErrAdminOnly = errors.New("admin role required")

// DateLayout is the accepted format of date range query parameters.
const DateLayout = "2006-01-02"

// Service provides service layer interface needed by entry delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package entrydelivery
type Service interface {
	ListForOwner(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Entry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Entry, error)
}

// UserService provides the role lookup needed for the activity view.
type UserService interface {
	Get(ctx context.Context, username string) (domain.UserWithoutPassword, error)
}

// Handler facilitates entry delivery layer logic.
type Handler struct {
	service     Service
	userService UserService
}

// NewHandler returns entry handler.
func NewHandler(es Service, us UserService) *Handler {
	return &Handler{
		service:     es,
		userService: us,
	}
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type data struct {
	Entries []domain.Entry `json:"entries"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// List handles http request to list the authenticated user's wallet history.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	entries, err := h.service.ListForOwner(ctx, authPayload.Username, req.PageSize, req.PageID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{entries},
	}

	gctx.JSON(http.StatusOK, res)
}

type listByDateRangeRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// ListByDateRange handles http request for the admin activity view over the
// whole ledger.
func (h *Handler) ListByDateRange(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listByDateRangeRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	start, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidRange))
		return
	}

	end, err := time.Parse(DateLayout, req.EndDate)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidRange))
		return
	}

	// Make the end date inclusive for whole-day queries.
	end = end.Add(24*time.Hour - time.Nanosecond)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	user, err := h.userService.Get(ctx, authPayload.Username)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	if user.Role != domain.RoleAdmin {
		gctx.JSON(http.StatusForbidden, web.Error(ErrAdminOnly))
		return
	}

	entries, err := h.service.ListByDateRange(ctx, start, end)
	if err != nil {
		if err == domain.ErrInvalidRange {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{entries},
	}

	gctx.JSON(http.StatusOK, res)
}
