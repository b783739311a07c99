package entrydelivery

import (
	"encoding/json"
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

	entryService := NewMockService(ctrl)
	userService := NewMockUserService(ctrl)
	handler := NewHandler(entryService, userService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/wallet/entries", handler.List)
	authRoutes.GET("/entries", handler.ListByDateRange)

	return server, entryService, userService, tokenMaker
}

func TestListEntriesAPI(t *testing.T) {
	owner := randompkg.Owner()

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(entryService *MockService)
		wantStatusCode int
	}{
		{
			name: "MissingPageID",
			url:  "/wallet/entries?page_size=10",
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListForOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "AccountNotFound",
			url:  "/wallet/entries?page_id=1&page_size=10",
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListForOwner(gomock.Any(), gomock.Eq(owner), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Return(nil, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "OK",
			url:  "/wallet/entries?page_id=1&page_size=10",
			buildStubs: func(entryService *MockService) {
				entries := []domain.Entry{{ID: 2}, {ID: 1}}

				entryService.EXPECT().ListForOwner(gomock.Any(), gomock.Eq(owner), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Return(entries, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, entryService, _, tokenMaker := newTestServer(t)

			tc.buildStubs(entryService)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestListEntriesByDateRangeAPI(t *testing.T) {
	username := randompkg.Owner()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	endInclusive := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)

	testCases := []struct {
		name           string
		url            string
		role           string
		buildStubs     func(entryService *MockService)
		wantStatusCode int
	}{
		{
			name: "StudentForbidden",
			url:  "/entries?start_date=2024-03-01&end_date=2024-03-31",
			role: domain.RoleStudent,
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "TeacherForbidden",
			url:  "/entries?start_date=2024-03-01&end_date=2024-03-31",
			role: domain.RoleTeacher,
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "MissingEndDate",
			url:  "/entries?start_date=2024-03-01",
			role: domain.RoleAdmin,
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "UnparsableStartDate",
			url:  "/entries?start_date=01.03.2024&end_date=2024-03-31",
			role: domain.RoleAdmin,
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "UnparsableEndDate",
			url:  "/entries?start_date=2024-03-01&end_date=yesterday",
			role: domain.RoleAdmin,
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InvalidRange",
			url:  "/entries?start_date=2024-03-31&end_date=2024-03-01",
			role: domain.RoleAdmin,
			buildStubs: func(entryService *MockService) {
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrInvalidRange)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "OK",
			url:  "/entries?start_date=2024-03-01&end_date=2024-03-31",
			role: domain.RoleAdmin,
			buildStubs: func(entryService *MockService) {
				entries := []domain.Entry{{ID: 1}, {ID: 2}}

				// The end of the range covers the whole last day.
				entryService.EXPECT().ListByDateRange(gomock.Any(), gomock.Eq(start), gomock.Eq(endInclusive)).
					Return(entries, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, entryService, userService, tokenMaker := newTestServer(t)

			userService.EXPECT().Get(gomock.Any(), gomock.Eq(username)).
				Return(domain.UserWithoutPassword{Username: username, Role: tc.role}, nil).
				AnyTimes()

			tc.buildStubs(entryService)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode == http.StatusOK {
				var got response
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
				require.Len(t, got.Data.Entries, 2)
			}
		})
	}
}
