package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedpoll/internal/locale"
	"feedpoll/internal/model"
	"feedpoll/internal/parser"
	"feedpoll/internal/service"
	"feedpoll/internal/state"
)

type fetcherFunc func(ctx context.Context, feedURL string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	return f(ctx, feedURL)
}

type counterIDs struct{ n int }

func (c *counterIDs) NextID() string {
	c.n++
	return fmt.Sprintf("%d", c.n)
}

func rssBody(titles ...string) []byte {
	var b strings.Builder
	b.WriteString(`<rss version="2.0"><channel><title>Feed</title><link>https://example.com</link><description>d</description>`)
	for i, title := range titles {
		fmt.Fprintf(&b, "<item><title>%s</title><link>https://example.com/%d</link><description>body</description></item>", title, i)
	}
	b.WriteString(`</channel></rss>`)
	out, _ := json.Marshal(map[string]string{"contents": b.String()})
	return out
}

func newTranslator(t *testing.T) *locale.Translator {
	t.Helper()
	tr, err := locale.New("ru")
	require.NoError(t, err)
	return tr
}

func newFeedHandler(t *testing.T, store *state.Store, fetcher service.FeedFetcher) *FeedHandler {
	t.Helper()
	svc := service.NewFeedService(store, fetcher, parser.New(), &counterIDs{}, time.Second)
	return NewFeedHandler(svc, newTranslator(t))
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestFeedHandler_Create(t *testing.T) {
	e := echo.New()
	store := state.New()
	h := newFeedHandler(t, store, fetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		return rssBody("P1"), nil
	}))

	c, rec := postJSON(e, "/api/feeds", `{"url":"https://example.com/rss"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[createFeedResponse](t, rec)
	assert.Equal(t, locale.KeyLoaded, resp.Key)
	assert.Equal(t, "RSS успешно загружен", resp.Message)
	assert.Equal(t, "https://example.com/rss", resp.Feed.URL)
	assert.Equal(t, []string{"https://example.com/rss"}, store.LoadedFeeds())
}

func TestFeedHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		target     string
		fetchErr   error
		wantStatus int
		wantKey    string
		wantMsg    string
	}{
		{name: "empty url", body: `{"url":""}`, target: "/api/feeds", wantStatus: http.StatusBadRequest, wantKey: locale.KeyRequired, wantMsg: "Не должно быть пустым"},
		{name: "bad url english", body: `{"url":"nope"}`, target: "/api/feeds?lang=en", wantStatus: http.StatusBadRequest, wantKey: locale.KeyURL, wantMsg: "Link must be a valid URL"},
		{name: "network", body: `{"url":"https://example.com/rss"}`, target: "/api/feeds", fetchErr: errors.New("reset"), wantStatus: http.StatusBadGateway, wantKey: locale.KeyNetwork, wantMsg: "Ошибка сети"},
		{name: "timeout", body: `{"url":"https://example.com/rss"}`, target: "/api/feeds", fetchErr: context.DeadlineExceeded, wantStatus: http.StatusGatewayTimeout, wantKey: locale.KeyTimeout, wantMsg: "Превышено время ожидания ответа"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			store := state.New()
			h := newFeedHandler(t, store, fetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
				return nil, tt.fetchErr
			}))

			c, rec := postJSON(e, tt.target, tt.body)
			require.NoError(t, h.Create(c))
			require.Equal(t, tt.wantStatus, rec.Code)

			resp := decode[errorResponse](t, rec)
			assert.Equal(t, tt.wantKey, resp.Key)
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Equal(t, tt.wantKey, store.Error())
		})
	}
}

func TestFeedHandler_CreateAcceptLanguage(t *testing.T) {
	e := echo.New()
	h := newFeedHandler(t, state.New(), fetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		return nil, errors.New("unused")
	}))

	c, rec := postJSON(e, "/api/feeds", `{"url":"   "}`)
	c.Request().Header.Set("Accept-Language", "en-US,en;q=0.9")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Must not be empty", decode[errorResponse](t, rec).Error)
}

func TestFeedHandler_CreateMalformedBody(t *testing.T) {
	e := echo.New()
	h := newFeedHandler(t, state.New(), fetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		return nil, errors.New("unused")
	}))

	c, rec := postJSON(e, "/api/feeds", `{"url":`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func seededStore(t *testing.T) *state.Store {
	t.Helper()
	store := state.New()
	require.True(t, store.AddFeed("https://example.com/rss", model.Feed{URL: "https://example.com/rss", Title: "Feed"}, []model.Post{
		{ID: "7", FeedURL: "https://example.com/rss", Title: "Seven", Description: "seven body", Link: "https://example.com/7"},
		{ID: "8", FeedURL: "https://example.com/rss", Title: "Eight", Description: "eight body", Link: "https://example.com/8"},
	}))
	return store
}

func TestPostHandler_OpenAndList(t *testing.T) {
	e := echo.New()
	store := seededStore(t)
	h := NewPostHandler(service.NewPostService(store), newTranslator(t))

	req := httptest.NewRequest(http.MethodPost, "/api/posts/8/open", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("8")
	require.NoError(t, h.Open(c))
	require.Equal(t, http.StatusOK, rec.Code)
	modal := decode[model.ModalSelection](t, rec)
	assert.Equal(t, model.ModalSelection{Title: "Eight", Description: "eight body", Link: "https://example.com/8", PostID: "8"}, modal)

	rec = httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/posts", nil), rec)))
	posts := decode[[]postResponse](t, rec)
	require.Len(t, posts, 2)
	assert.False(t, posts[0].Visited)
	assert.True(t, posts[1].Visited)

	rec = httptest.NewRecorder()
	require.NoError(t, h.Modal(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/modal", nil), rec)))
	assert.Equal(t, modal, decode[model.ModalSelection](t, rec))
}

func TestPostHandler_OpenUnknown(t *testing.T) {
	e := echo.New()
	store := seededStore(t)
	h := NewPostHandler(service.NewPostService(store), newTranslator(t))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/posts/99/open", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Open(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.ModalSelection{}, store.Modal())
}

type stubRefresher struct {
	result     service.CycleResult
	err        error
	refreshing bool
}

func (s stubRefresher) RefreshAll(ctx context.Context) (service.CycleResult, error) {
	return s.result, s.err
}

func (s stubRefresher) IsRefreshing() bool { return s.refreshing }

func TestRefreshHandler(t *testing.T) {
	e := echo.New()
	tr := newTranslator(t)

	rec := httptest.NewRecorder()
	h := NewRefreshHandler(stubRefresher{result: service.CycleResult{Feeds: 2, Failed: 1, Admitted: 3}}, tr)
	require.NoError(t, h.Refresh(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/refresh", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, refreshResponse{Feeds: 2, Failed: 1, Admitted: 3}, decode[refreshResponse](t, rec))

	rec = httptest.NewRecorder()
	h = NewRefreshHandler(stubRefresher{err: service.ErrAlreadyRefreshing}, tr)
	require.NoError(t, h.Refresh(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/refresh", nil), rec)))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRefreshHandler_Status(t *testing.T) {
	e := echo.New()
	tr := newTranslator(t)

	for _, refreshing := range []bool{false, true} {
		rec := httptest.NewRecorder()
		h := NewRefreshHandler(stubRefresher{refreshing: refreshing}, tr)
		require.NoError(t, h.Status(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/refresh", nil), rec)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, refreshStatusResponse{Refreshing: refreshing}, decode[refreshStatusResponse](t, rec))
	}
}

func TestLocaleHandler_List(t *testing.T) {
	e := echo.New()
	h := NewLocaleHandler(newTranslator(t))

	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/locales", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[localesResponse](t, rec)
	assert.Equal(t, "ru", resp.Default)
	assert.ElementsMatch(t, []string{"en", "ru"}, resp.Languages)
}

func TestExportHandler(t *testing.T) {
	e := echo.New()
	h := NewExportHandler(service.NewExportService(seededStore(t), "http://localhost/api/posts.rss"), newTranslator(t))

	rec := httptest.NewRecorder()
	require.NoError(t, h.RSS(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/posts.rss", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/rss+xml")
	assert.Contains(t, rec.Body.String(), "Seven")

	rec = httptest.NewRecorder()
	require.NoError(t, h.Atom(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/posts.atom", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/atom+xml")
	assert.Contains(t, rec.Body.String(), "Eight")
}

func TestStateHandler_Snapshot(t *testing.T) {
	e := echo.New()
	h := NewStateHandler(seededStore(t))

	rec := httptest.NewRecorder()
	require.NoError(t, h.Snapshot(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/state", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[state.Snapshot](t, rec)
	assert.Equal(t, model.StatusFilling, snap.Status)
	assert.True(t, snap.Valid)
	assert.Equal(t, []string{"https://example.com/rss"}, snap.LoadedFeeds)
	assert.Len(t, snap.Contents.Posts, 2)
}

func TestStateHandler_Events(t *testing.T) {
	store := seededStore(t)
	e := echo.New()
	NewStateHandler(store).RegisterRoutes(e.Group("/api"))
	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var name, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "":
				return name, data
			}
		}
	}

	name, data := readEvent()
	require.Equal(t, "snapshot", name)
	assert.Contains(t, data, `"loadedFeeds":["https://example.com/rss"]`)

	// The subscription is registered before the snapshot is written.
	store.SetStatus(model.StatusSending)
	name, data = readEvent()
	require.Equal(t, "change", name)
	assert.JSONEq(t, `{"path":"status","value":"sending"}`, data)
}

func TestOPMLHandler_ImportAndExport(t *testing.T) {
	e := echo.New()
	store := state.New()
	feeds := service.NewFeedService(store, fetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		return rssBody("P1"), nil
	}), parser.New(), &counterIDs{}, time.Second)
	h := NewOPMLHandler(service.NewOPMLService(feeds, store), newTranslator(t))

	body := `<opml version="2.0"><body><outline text="a" xmlUrl="https://a.example/rss"/></body></opml>`
	req := httptest.NewRequest(http.MethodPost, "/api/opml/import", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "text/xml")
	rec := httptest.NewRecorder()
	require.NoError(t, h.Import(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ImportResult{FeedsCreated: 1}, decode[service.ImportResult](t, rec))

	rec = httptest.NewRecorder()
	require.NoError(t, h.Export(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/opml/export", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `xmlUrl="https://a.example/rss"`)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "feedpoll.opml")
}

func TestOPMLHandler_ImportInvalid(t *testing.T) {
	e := echo.New()
	store := state.New()
	h := NewOPMLHandler(service.NewOPMLService(nil, store), newTranslator(t))

	req := httptest.NewRequest(http.MethodPost, "/api/opml/import", strings.NewReader("nonsense"))
	rec := httptest.NewRecorder()
	require.NoError(t, h.Import(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartOPML(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "subscriptions.opml")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/opml/import", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestOPMLHandler_ImportMultipart(t *testing.T) {
	e := echo.New()
	store := state.New()
	feeds := service.NewFeedService(store, fetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
		return rssBody("P1"), nil
	}), parser.New(), &counterIDs{}, time.Second)
	h := NewOPMLHandler(service.NewOPMLService(feeds, store), newTranslator(t))

	doc := []byte(`<opml version="2.0"><body><outline text="a" xmlUrl="https://a.example/rss"/></body></opml>`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Import(e.NewContext(multipartOPML(t, "file", doc), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ImportResult{FeedsCreated: 1}, decode[service.ImportResult](t, rec))
	assert.Equal(t, []string{"https://a.example/rss"}, store.LoadedFeeds())
}

func TestOPMLHandler_ImportRejectedUploads(t *testing.T) {
	e := echo.New()
	h := NewOPMLHandler(service.NewOPMLService(nil, state.New()), newTranslator(t))
	oversized := bytes.Repeat([]byte("a"), maxOPMLSize+1)

	rawOversized := httptest.NewRequest(http.MethodPost, "/api/opml/import", bytes.NewReader(oversized))
	rawOversized.Header.Set(echo.HeaderContentType, "text/xml")

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"raw body over the limit", rawOversized, http.StatusRequestEntityTooLarge},
		{"multipart file over the limit", multipartOPML(t, "file", oversized), http.StatusRequestEntityTooLarge},
		{"multipart without file field", multipartOPML(t, "upload", []byte("<opml/>")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, h.Import(e.NewContext(tt.req, rec)))
			require.Equal(t, tt.want, rec.Code)
		})
	}
}
