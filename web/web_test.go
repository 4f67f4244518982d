package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"market/config"
	"market/database"
	"market/logger"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("MARKET_DB_FOLDER", t.TempDir())
	t.Setenv("MARKET_STATIC_FOLDER", t.TempDir())
	t.Setenv("MARKET_LOG_FOLDER", os.TempDir())
	t.Setenv("MARKET_SECRET", "test-secret")

	logger.InitLogger(logging.ERROR)
	require.NoError(t, database.InitDB(config.GetDBPath()))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	s := NewServer()
	engine, err := s.initRouter()
	require.NoError(t, err)
	return engine
}

func postForm(engine *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)
	return w
}

func get(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)
	return w
}

// lastCookies keeps only the final cookie per name, the way a browser does
// when a response sets the same cookie twice.
func lastCookies(cookies []*http.Cookie) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	order := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if _, seen := byName[c.Name]; !seen {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}
	result := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		result = append(result, byName[name])
	}
	return result
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	engine := newTestRouter(t)

	for _, path := range []string{"/home", "/account", "/reset_items"} {
		w := get(engine, path, nil)
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := get(engine, "/api/favorites", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterLoginAccountFlow(t *testing.T) {
	engine := newTestRouter(t)

	w := postForm(engine, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@x.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = postForm(engine, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/account", w.Header().Get("Location"))
	cookies := lastCookies(w.Result().Cookies())
	assert.NotEmpty(t, cookies)

	w = get(engine, "/account", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	w = get(engine, "/home", cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postForm(engine, "/favorite/1", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))

	w = get(engine, "/api/favorites", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestLoginWithWrongPassword(t *testing.T) {
	engine := newTestRouter(t)

	w := postForm(engine, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@x.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = postForm(engine, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code, "failed login re-renders the form")

	// No session cookie carrying a login may be issued.
	w2 := get(engine, "/account", w.Result().Cookies())
	assert.Equal(t, http.StatusTemporaryRedirect, w2.Code)
}

func TestApiItemsWithoutSession(t *testing.T) {
	engine := newTestRouter(t)

	w := get(engine, "/api/items", nil)
	assert.Equal(t, http.StatusOK, w.Code, "the catalog API requires no login")
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestLanguageIsPerRequest(t *testing.T) {
	engine := newTestRouter(t)

	ru := get(engine, "/", []*http.Cookie{{Name: "lang", Value: "ru-RU"}})
	assert.Equal(t, http.StatusOK, ru.Code)
	assert.Contains(t, ru.Body.String(), "Добро пожаловать в Маркет")

	en := get(engine, "/", []*http.Cookie{{Name: "lang", Value: "en-US"}})
	assert.Equal(t, http.StatusOK, en.Code)
	assert.Contains(t, en.Body.String(), "Welcome to Market")

	// Concurrent requests keep their own language.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		lang, want := "en-US", "Welcome to Market"
		if i%2 == 0 {
			lang, want = "ru-RU", "Добро пожаловать в Маркет"
		}
		wg.Add(1)
		go func(lang, want string) {
			defer wg.Done()
			w := get(engine, "/", []*http.Cookie{{Name: "lang", Value: lang}})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), want)
		}(lang, want)
	}
	wg.Wait()
}

func TestPublicPages(t *testing.T) {
	engine := newTestRouter(t)

	for _, path := range []string{"/", "/about", "/contact", "/register", "/login", "/api/items"} {
		w := get(engine, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
