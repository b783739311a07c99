package postdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/internal/middleware"
	"github.com/maktab-app/maktab-wallet/pkg/randompkg"
	"github.com/maktab-app/maktab-wallet/pkg/tokenpkg"
)

func newTestServer(t *testing.T) (*gin.Engine, *MockService, *MockUserService, tokenpkg.Maker) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	postService := NewMockService(ctrl)
	userService := NewMockUserService(ctrl)
	handler := NewHandler(postService, userService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/posts", handler.List)
	authRoutes.GET("/posts/:id", handler.Get)
	authRoutes.POST("/posts", handler.Create)
	authRoutes.PUT("/posts/:id", handler.Update)
	authRoutes.DELETE("/posts/:id", handler.Delete)
	authRoutes.POST("/posts/:id/like", handler.Like)
	authRoutes.POST("/posts/:id/feature", handler.Feature)

	return server, postService, userService, tokenMaker
}

func TestCreatePostAPI(t *testing.T) {
	author := randompkg.Owner()

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(postService *MockService)
		wantStatusCode int
	}{
		{
			name:        "MissingContent",
			requestBody: gin.H{"ayah_reference": "2:153"},
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "OK",
			requestBody: gin.H{"content": "Reflection", "ayah_reference": "2:153"},
			buildStubs: func(postService *MockService) {
				arg := domain.CreatePostParams{
					Author:        author,
					Content:       "Reflection",
					AyahReference: "2:153",
				}

				postService.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Return(domain.Post{ID: 1, Author: author, Content: "Reflection"}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, postService, _, tokenMaker := newTestServer(t)

			tc.buildStubs(postService)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, author, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestUpdatePostAPI(t *testing.T) {
	username := randompkg.Owner()
	postID := int32(5)

	testCases := []struct {
		name           string
		buildStubs     func(postService *MockService)
		wantStatusCode int
	}{
		{
			name: "NotAuthor",
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Update(gomock.Any(), gomock.Eq(username), gomock.Eq(postID), gomock.Any()).
					Return(domain.Post{}, domain.ErrNotPostAuthor)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "PostNotFound",
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Update(gomock.Any(), gomock.Eq(username), gomock.Eq(postID), gomock.Any()).
					Return(domain.Post{}, domain.ErrPostNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "OK",
			buildStubs: func(postService *MockService) {
				arg := domain.UpdatePostParams{Content: "Edited"}

				postService.EXPECT().Update(gomock.Any(), gomock.Eq(username), gomock.Eq(postID), gomock.Eq(arg)).
					Return(domain.Post{ID: postID, Author: username, Content: "Edited"}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, postService, _, tokenMaker := newTestServer(t)

			tc.buildStubs(postService)

			body, err := json.Marshal(gin.H{"content": "Edited"})
			require.NoError(t, err)

			url := fmt.Sprintf("/posts/%d", postID)

			req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestLikePostAPI(t *testing.T) {
	username := randompkg.Owner()
	postID := int32(5)

	testCases := []struct {
		name           string
		buildStubs     func(postService *MockService)
		wantStatusCode int
	}{
		{
			name: "PostNotFound",
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Like(gomock.Any(), gomock.Eq(postID)).
					Return(domain.Post{}, domain.ErrPostNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "OK",
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Like(gomock.Any(), gomock.Eq(postID)).
					Return(domain.Post{ID: postID, Likes: 1}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, postService, _, tokenMaker := newTestServer(t)

			tc.buildStubs(postService)

			url := fmt.Sprintf("/posts/%d/like", postID)

			req, err := http.NewRequest(http.MethodPost, url, nil)
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestFeaturePostAPI(t *testing.T) {
	username := randompkg.Owner()
	postID := int32(5)

	testCases := []struct {
		name           string
		role           string
		buildStubs     func(postService *MockService)
		wantStatusCode int
	}{
		{
			name: "StudentForbidden",
			role: domain.RoleStudent,
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Feature(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "TeacherForbidden",
			role: domain.RoleTeacher,
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Feature(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "OK",
			role: domain.RoleAdmin,
			buildStubs: func(postService *MockService) {
				postService.EXPECT().Feature(gomock.Any(), gomock.Eq(postID), gomock.Eq(true)).
					Return(domain.Post{ID: postID, IsFeatured: true}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, postService, userService, tokenMaker := newTestServer(t)

			userService.EXPECT().Get(gomock.Any(), gomock.Eq(username)).
				Return(domain.UserWithoutPassword{Username: username, Role: tc.role}, nil).
				AnyTimes()

			tc.buildStubs(postService)

			body, err := json.Marshal(gin.H{"featured": true})
			require.NoError(t, err)

			url := fmt.Sprintf("/posts/%d/feature", postID)

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestListPostsAPI(t *testing.T) {
	username := randompkg.Owner()

	server, postService, _, tokenMaker := newTestServer(t)

	posts := []domain.Post{
		{ID: 2, Content: "Second"},
		{ID: 1, Content: "First"},
	}

	postService.EXPECT().List(gomock.Any(), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
		Return(posts, nil)

	req, err := http.NewRequest(http.MethodGet, "/posts?page_id=1&page_size=10", nil)
	require.NoError(t, err)

	err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got responsePosts
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	require.Len(t, got.Data.Posts, 2)
	require.Equal(t, int32(2), got.Data.Posts[0].ID)
}
