package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	inboundhttp "github.com/pitosalas/blogbridge-sub012/internal/adapters/inbound/http"
	"github.com/pitosalas/blogbridge-sub012/internal/config"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/internal/infrastructure"
	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases"
	"github.com/pitosalas/blogbridge-sub012/pkg/circuitbreaker"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics/memory"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	feeds    map[model.SmartFeedID]*model.SmartFeed
	count    int
	countErr error
	readCall *bool
	panicOn  string
}

func newStubService() *stubService {
	return &stubService{feeds: make(map[model.SmartFeedID]*model.SmartFeed)}
}

func (s *stubService) SaveSmartFeed(_ context.Context, id model.SmartFeedID, title, rawQuery string) (*model.SmartFeed, error) {
	q, err := query.Parse(rawQuery)
	if err != nil {
		return nil, err
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	feed, err := model.NewSmartFeed(id, title, q)
	if err != nil {
		return nil, err
	}

	s.feeds[id] = feed

	return feed, nil
}

func (s *stubService) GetSmartFeed(_ context.Context, id model.SmartFeedID) (*model.SmartFeedView, error) {
	feed, ok := s.feeds[id]
	if !ok {
		return nil, model.ErrSmartFeedNotFound
	}

	if s.countErr != nil {
		return nil, s.countErr
	}

	return &model.SmartFeedView{SmartFeed: feed, MatchCount: s.count}, nil
}

func (s *stubService) ListSmartFeeds(context.Context) ([]*model.SmartFeed, error) {
	if s.panicOn == "list" {
		panic("list exploded")
	}

	feeds := make([]*model.SmartFeed, 0, len(s.feeds))
	for _, feed := range s.feeds {
		feeds = append(feeds, feed)
	}

	return feeds, nil
}

func (s *stubService) ListArticles(_ context.Context, id model.SmartFeedID, page model.PageRequest) (*model.ArticleList, error) {
	if _, ok := s.feeds[id]; !ok {
		return nil, model.ErrSmartFeedNotFound
	}

	article := &model.Article{
		ID:        model.NewArticleID(),
		FeedID:    model.NewFeedID(),
		Title:     "Go generics",
		Sentiment: model.SentimentPositive,
	}

	return &model.ArticleList{
		Articles:   []*model.Article{article},
		Pagination: model.NewPagination(page, 41),
	}, nil
}

func (s *stubService) DeleteSmartFeed(_ context.Context, id model.SmartFeedID) error {
	if _, ok := s.feeds[id]; !ok {
		return model.ErrSmartFeedNotFound
	}

	delete(s.feeds, id)

	return nil
}

func (s *stubService) MarkArticleRead(_ context.Context, _ model.ArticleID, read bool) error {
	s.readCall = &read

	return nil
}

func (s *stubService) ArticleArrived(context.Context, model.ArticleID) ([]model.SmartFeedID, error) {
	ids := make([]model.SmartFeedID, 0, len(s.feeds))
	for id := range s.feeds {
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *stubService) Describe() []query.Property {
	return query.Properties()
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, svc *stubService, dbErr error) http.Handler {
	t.Helper()

	cfg := &config.ServiceConfig{}
	cfg.HTTPServer.RequestTimeout = 5 * time.Second
	cfg.Telemetry.Metrics.Enabled = true
	cfg.Logging.AccessLog.Enabled = true

	log := logger.NewTestLogger()
	mc := memory.NewMetricsClient()

	dependencies := map[string]ports.DatabaseHealthChecker{
		"postgres": pingFunc(func(context.Context) error { return dbErr }),
		"keydb":    pingFunc(func(context.Context) error { return nil }),
	}

	app := usecases.NewApplication(svc, dependencies, "test", log, mc, infrastructure.NewNoopTracerProvider())

	return inboundhttp.NewRouter(inboundhttp.RouterConfig{
		App:           app,
		Logger:        log,
		MetricsClient: mc,
		Config:        cfg,
	})
}

func do(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestSaveSmartFeedStatusCodes(t *testing.T) {
	t.Parallel()

	id := model.NewSmartFeedID().String()

	cases := []struct {
		name           string
		target         string
		body           string
		expectedStatus int
		expectedCode   string
		expectedIndex  *float64
	}{
		{
			name:           "valid query",
			target:         "/v1/smart-feeds/" + id,
			body:           `{"title":"Go","query":"&articleTitle:contains:go"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid criteria value",
			target:         "/v1/smart-feeds/" + id,
			body:           `{"title":"Go","query":"&articleTitle:contains:go;feedStarz:greater:7"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_QUERY",
			expectedIndex:  ptr(1.0),
		},
		{
			name:           "unknown property",
			target:         "/v1/smart-feeds/" + id,
			body:           `{"title":"Go","query":"articleMood:is:happy"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_QUERY",
			expectedIndex:  ptr(0.0),
		},
		{
			name:           "missing title",
			target:         "/v1/smart-feeds/" + id,
			body:           `{"title":"","query":"articleTitle:contains:go"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "malformed body",
			target:         "/v1/smart-feeds/" + id,
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
		{
			name:           "malformed id",
			target:         "/v1/smart-feeds/not-a-uuid",
			body:           `{"title":"Go","query":"articleTitle:contains:go"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ID",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, newStubService(), nil)

			rec := do(t, router, http.MethodPut, tc.target, tc.body, nil)
			require.Equal(t, tc.expectedStatus, rec.Code)

			body := decode(t, rec)

			if tc.expectedCode == "" {
				data := body["data"].(map[string]any)
				require.Equal(t, "&articleTitle:contains:go", data["query"])
				require.Equal(t, true, data["matchAll"])

				return
			}

			require.Equal(t, tc.expectedCode, body["code"])

			if tc.expectedIndex != nil {
				require.Equal(t, *tc.expectedIndex, body["index"])
			}
		})
	}
}

func TestGetSmartFeedConditional(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	svc.count = 3
	router := newTestRouter(t, svc, nil)
	id := model.NewSmartFeedID().String()

	rec := do(t, router, http.MethodPut, "/v1/smart-feeds/"+id, `{"title":"Go","query":"articleTitle:contains:go"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/smart-feeds/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	data := decode(t, rec)["data"].(map[string]any)
	require.Equal(t, 3.0, data["matchCount"])

	rec = do(t, router, http.MethodGet, "/v1/smart-feeds/"+id, "", map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	svc.count = 4

	rec = do(t, router, http.MethodGet, "/v1/smart-feeds/"+id, "", map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEqual(t, etag, rec.Header().Get("ETag"))
}

func TestGetSmartFeedErrors(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	router := newTestRouter(t, svc, nil)

	rec := do(t, router, http.MethodGet, "/v1/smart-feeds/"+model.NewSmartFeedID().String(), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Header().Get("ETag"))

	id := model.NewSmartFeedID()
	_, err := svc.SaveSmartFeed(context.Background(), id, "Go", "articleTitle:contains:go")
	require.NoError(t, err)

	svc.countErr = circuitbreaker.ErrCircuitOpen

	rec = do(t, router, http.MethodGet, "/v1/smart-feeds/"+id.String(), "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDeleteSmartFeed(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	router := newTestRouter(t, svc, nil)
	id := model.NewSmartFeedID()

	_, err := svc.SaveSmartFeed(context.Background(), id, "Go", "articleTitle:contains:go")
	require.NoError(t, err)

	rec := do(t, router, http.MethodDelete, "/v1/smart-feeds/"+id.String(), "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/v1/smart-feeds/"+id.String(), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSmartFeedArticles(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	router := newTestRouter(t, svc, nil)
	id := model.NewSmartFeedID()

	_, err := svc.SaveSmartFeed(context.Background(), id, "Go", "articleTitle:contains:go")
	require.NoError(t, err)

	rec := do(t, router, http.MethodGet, "/v1/smart-feeds/"+id.String()+"/articles?page=2&size=20", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Len(t, body["data"], 1)

	pagination := body["pagination"].(map[string]any)
	require.Equal(t, 2.0, pagination["page"])
	require.Equal(t, 3.0, pagination["totalPages"])

	rec = do(t, router, http.MethodGet, "/v1/smart-feeds/"+id.String()+"/articles?page=two", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_PAGE", decode(t, rec)["code"])
}

func TestMarkArticleRead(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		body         string
		expectedRead bool
	}{
		{name: "empty body marks read", expectedRead: true},
		{name: "explicit unread", body: `{"read":false}`, expectedRead: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newStubService()
			router := newTestRouter(t, svc, nil)

			rec := do(t, router, http.MethodPost, "/v1/articles/"+model.NewArticleID().String()+"/read", tc.body, nil)
			require.Equal(t, http.StatusNoContent, rec.Code)
			require.NotNil(t, svc.readCall)
			require.Equal(t, tc.expectedRead, *svc.readCall)
		})
	}
}

func TestArticleArrived(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	router := newTestRouter(t, svc, nil)
	id := model.NewSmartFeedID()

	_, err := svc.SaveSmartFeed(context.Background(), id, "Go", "articleTitle:contains:go")
	require.NoError(t, err)

	rec := do(t, router, http.MethodPost, "/v1/articles/"+model.NewArticleID().String()+"/arrived", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]any)
	require.Equal(t, []any{id.String()}, data["smartFeeds"])
}

func TestDescribePropertiesIsCacheable(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newStubService(), nil)

	rec := do(t, router, http.MethodGet, "/v1/properties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["data"], len(query.Properties()))

	rec = do(t, router, http.MethodGet, "/v1/properties", "", map[string]string{"If-None-Match": rec.Header().Get("ETag")})
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		target         string
		dbErr          error
		expectedStatus int
	}{
		{name: "liveness", target: "/health/liveness", expectedStatus: http.StatusOK},
		{name: "readiness", target: "/health/readiness", expectedStatus: http.StatusOK},
		{name: "readiness with database down", target: "/health/readiness", dbErr: errors.New("refused"), expectedStatus: http.StatusServiceUnavailable},
		{name: "report with database down", target: "/health", dbErr: errors.New("refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, newStubService(), tc.dbErr)

			rec := do(t, router, http.MethodGet, tc.target, "", nil)
			require.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestRecoveryAnswersInternalError(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	svc.panicOn = "list"
	router := newTestRouter(t, svc, nil)

	rec := do(t, router, http.MethodGet, "/v1/smart-feeds/", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "INTERNAL_ERROR", decode(t, rec)["code"])
}

func ptr[T any](v T) *T {
	return &v
}
