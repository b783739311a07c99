package classdelivery

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
	"github.com/shopspring/decimal"
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

	classService := NewMockService(ctrl)
	userService := NewMockUserService(ctrl)
	handler := NewHandler(classService, userService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/classes", handler.List)
	authRoutes.GET("/classes/:id", handler.Get)
	authRoutes.POST("/classes", handler.Create)
	authRoutes.POST("/classes/:id/join", handler.Join)

	return server, classService, userService, tokenMaker
}

func TestCreateClassAPI(t *testing.T) {
	teacher := randompkg.Owner()

	testCases := []struct {
		name           string
		requestBody    gin.H
		role           string
		buildStubs     func(classService *MockService)
		wantStatusCode int
	}{
		{
			name:        "StudentForbidden",
			requestBody: gin.H{"title": "Algebra", "price": "40"},
			role:        domain.RoleStudent,
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:        "MissingTitle",
			requestBody: gin.H{"price": "40"},
			role:        domain.RoleTeacher,
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "UnparsablePrice",
			requestBody: gin.H{"title": "Algebra", "price": "forty"},
			role:        domain.RoleTeacher,
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "InvalidPrice",
			requestBody: gin.H{"title": "Algebra", "price": "-40"},
			role:        domain.RoleTeacher,
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(domain.Class{}, domain.ErrInvalidAmount)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "OK",
			requestBody: gin.H{"title": "Algebra", "price": "40"},
			role:        domain.RoleTeacher,
			buildStubs: func(classService *MockService) {
				arg := domain.CreateClassParams{
					Title:   "Algebra",
					Teacher: teacher,
					Price:   decimal.RequireFromString("40"),
				}

				classService.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Return(domain.Class{ID: 1, Title: "Algebra", Teacher: teacher}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, classService, userService, tokenMaker := newTestServer(t)

			userService.EXPECT().Get(gomock.Any(), gomock.Eq(teacher)).
				Return(domain.UserWithoutPassword{Username: teacher, Role: tc.role}, nil).
				AnyTimes()

			tc.buildStubs(classService)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/classes", bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, teacher, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestJoinClassAPI(t *testing.T) {
	student := randompkg.Owner()
	classID := int32(3)

	testCases := []struct {
		name           string
		buildStubs     func(classService *MockService)
		wantStatusCode int
	}{
		{
			name: "ClassNotFound",
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Join(gomock.Any(), gomock.Eq(student), gomock.Eq(classID)).
					Return(domain.JoinClassResult{}, domain.ErrClassNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "OwnClass",
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Join(gomock.Any(), gomock.Eq(student), gomock.Eq(classID)).
					Return(domain.JoinClassResult{}, domain.ErrOwnClassJoin)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InsufficientBalance",
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Join(gomock.Any(), gomock.Eq(student), gomock.Eq(classID)).
					Return(domain.JoinClassResult{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "Busy",
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Join(gomock.Any(), gomock.Eq(student), gomock.Eq(classID)).
					Return(domain.JoinClassResult{}, domain.ErrBusy)
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
		{
			name: "OK",
			buildStubs: func(classService *MockService) {
				classService.EXPECT().Join(gomock.Any(), gomock.Eq(student), gomock.Eq(classID)).
					Return(domain.JoinClassResult{Class: domain.Class{ID: classID, Students: 1}}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, classService, _, tokenMaker := newTestServer(t)

			tc.buildStubs(classService)

			url := fmt.Sprintf("/classes/%d/join", classID)

			req, err := http.NewRequest(http.MethodPost, url, nil)
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, student, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestListClassesAPI(t *testing.T) {
	username := randompkg.Owner()

	server, classService, _, tokenMaker := newTestServer(t)

	classes := []domain.Class{
		{ID: 1, Title: "Algebra"},
		{ID: 2, Title: "Geometry"},
	}

	classService.EXPECT().List(gomock.Any(), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
		Return(classes, nil)

	req, err := http.NewRequest(http.MethodGet, "/classes?page_id=1&page_size=10", nil)
	require.NoError(t, err)

	err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got responseClasses
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	require.Len(t, got.Data.Classes, 2)
}
