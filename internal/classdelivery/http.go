// Package classdelivery manages delivery layer of classes.
package classdelivery

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

// ErrTeacherOnly indicates that the endpoint requires the teacher role.
var ErrTeacherOnly = errors.New("teacher role required")

// Service provides service layer interface needed by class delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package classdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateClassParams) (domain.Class, error)
	Get(ctx context.Context, id int32) (domain.Class, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Class, error)
	Join(ctx context.Context, username string, classID int32) (domain.JoinClassResult, error)
}

// UserService provides the role lookup needed to create classes.
type UserService interface {
	Get(ctx context.Context, username string) (domain.UserWithoutPassword, error)
}

// Handler facilitates class delivery layer logic.
type Handler struct {
	service     Service
	userService UserService
}

// NewHandler returns class handler.
func NewHandler(cs Service, us UserService) *Handler {
	return &Handler{
		service:     cs,
		userService: us,
	}
}

type data struct {
	Class domain.Class `json:"class"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Title string `json:"title" binding:"required,max=100"`
	Price string `json:"price" binding:"required"`
}

// Create handles http request to create a class listing.
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

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	user, err := h.userService.Get(ctx, authPayload.Username)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	if user.Role != domain.RoleTeacher {
		gctx.JSON(http.StatusForbidden, web.Error(ErrTeacherOnly))
		return
	}

	class, err := h.service.Create(ctx, domain.CreateClassParams{
		Title:   req.Title,
		Teacher: authPayload.Username,
		Price:   price,
	})
	if err != nil {
		if err == domain.ErrInvalidAmount {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{class},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a class.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	class, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrClassNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{class},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataClasses struct {
	Classes []domain.Class `json:"classes"`
}

type responseClasses struct {
	Data dataClasses `json:"data,omitempty"`
}

// List handles http request to list classes.
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

	classes, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseClasses{
		Data: dataClasses{classes},
	}

	gctx.JSON(http.StatusOK, res)
}

type joinData struct {
	Join domain.JoinClassResult `json:"join"`
}

type joinResponse struct {
	Data joinData `json:"data,omitempty"`
}

// Join handles http request to enroll the authenticated user in a class.
func (h *Handler) Join(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Join(ctx, authPayload.Username, req.ID)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrClassNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrOwnClassJoin,
			domain.ErrSelfTransfer,
			domain.ErrInvalidAmount,
			domain.ErrInsufficientBalance,
			domain.ErrAccountClosed:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrBusy:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := joinResponse{
		Data: joinData{result},
	}

	gctx.JSON(http.StatusOK, res)
}
