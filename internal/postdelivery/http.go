// Package postdelivery manages delivery layer of community posts.
package postdelivery

import (
	"context"
	"errors"
	"net/http"

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

// Service provides service layer interface needed by post delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package postdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreatePostParams) (domain.Post, error)
	Get(ctx context.Context, id int32) (domain.Post, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Post, error)
	Update(ctx context.Context, username string, id int32, arg domain.UpdatePostParams) (domain.Post, error)
	Delete(ctx context.Context, username string, id int32) error
	Like(ctx context.Context, id int32) (domain.Post, error)
	Feature(ctx context.Context, id int32, featured bool) (domain.Post, error)
}

// UserService provides the role lookup needed to feature posts.
type UserService interface {
	Get(ctx context.Context, username string) (domain.UserWithoutPassword, error)
}

// Handler facilitates post delivery layer logic.
type Handler struct {
	service     Service
	userService UserService
}

// NewHandler returns post handler.
func NewHandler(ps Service, us UserService) *Handler {
	return &Handler{
		service:     ps,
		userService: us,
	}
}

type data struct {
	Post domain.Post `json:"post"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Content       string `json:"content" binding:"required,max=2000"`
	AyahReference string `json:"ayah_reference" binding:"omitempty,max=100"`
	AyahText      string `json:"ayah_text" binding:"omitempty,max=1000"`
}

// Create handles http request to create a post.
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

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	post, err := h.service.Create(ctx, domain.CreatePostParams{
		Author:        authPayload.Username,
		Content:       req.Content,
		AyahReference: req.AyahReference,
		AyahText:      req.AyahText,
	})
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{post},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a post.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	post, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrPostNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{post},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataPosts struct {
	Posts []domain.Post `json:"posts"`
}

type responsePosts struct {
	Data dataPosts `json:"data,omitempty"`
}

// List handles http request to list posts newest first.
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

	posts, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responsePosts{
		Data: dataPosts{posts},
	}

	gctx.JSON(http.StatusOK, res)
}

type updateRequest struct {
	Content       string `json:"content" binding:"required,max=2000"`
	AyahReference string `json:"ayah_reference" binding:"omitempty,max=100"`
	AyahText      string `json:"ayah_text" binding:"omitempty,max=1000"`
}

// Update handles http request to update the authenticated user's post.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req updateRequest
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

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	post, err := h.service.Update(ctx, authPayload.Username, uri.ID, domain.UpdatePostParams{
		Content:       req.Content,
		AyahReference: req.AyahReference,
		AyahText:      req.AyahText,
	})
	if err != nil {
		switch err {
		case domain.ErrPostNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrNotPostAuthor:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{post},
	}

	gctx.JSON(http.StatusOK, res)
}

// Delete handles http request to delete the authenticated user's post.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Delete(ctx, authPayload.Username, req.ID); err != nil {
		switch err {
		case domain.ErrPostNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrNotPostAuthor:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}

// Like handles http request to like a post.
func (h *Handler) Like(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	post, err := h.service.Like(ctx, req.ID)
	if err != nil {
		if err == domain.ErrPostNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{post},
	}

	gctx.JSON(http.StatusOK, res)
}

type featureRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// Feature handles http request to set a post's featured flag.
func (h *Handler) Feature(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req featureRequest
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

	post, err := h.service.Feature(ctx, uri.ID, *req.Featured)
	if err != nil {
		if err == domain.ErrPostNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{post},
	}

	gctx.JSON(http.StatusOK, res)
}
