package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/avc/storefront/internal/config"
	"github.com/avc/storefront/internal/storefront"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogPayload = `{"success": true, "products": [
	{"id": "p1", "name": "Garden Hose", "category": "garden", "price": 19.99, "imageUrl": "https://img/p1.png"},
	{"id": "p2", "name": "Dog Bed", "category": "pet-care", "price": "64.00", "imageUrl": "https://img/p2.png"}
]}`

func newTestApp(t *testing.T, configure ...func(*config.Config)) (http.Handler, *dependencies) {
	t.Helper()

	catalogAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogPayload))
	}))
	t.Cleanup(catalogAPI.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		CatalogAPIURL:       catalogAPI.URL,
		CatalogFetchTimeout: time.Second,
		CheckoutSuccessURL:  "http://shop.local/success.html",
		CheckoutCancelURL:   "http://shop.local/cart.html",
		CheckoutTimeout:     time.Second,
		SessionSecret:       "test-secret",
		SessionTTL:          time.Hour,
	}
	for _, fn := range configure {
		fn(cfg)
	}

	deps, err := initDependencies(cfg, nil, rdb, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, deps.loader.Refresh(context.Background()))

	return setupRouter(deps, zap.NewNop()), deps
}

func TestRouter_Storefront(t *testing.T) {
	router, deps := newTestApp(t)
	var cookies []*http.Cookie

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		}
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if got := w.Result().Cookies(); len(got) > 0 {
			cookies = got
		}
		return w
	}

	t.Run("Ready after catalog load", func(t *testing.T) {
		w := do(http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"ok"`)
	})

	t.Run("Visitor session persists across requests", func(t *testing.T) {
		w := do(http.MethodPost, "/api/cart/items", `{"productId":"p2","quantity":2}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, cookies)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		w = do(http.MethodGet, "/api/cart", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"subtotal":"$128.00"`)
		assert.Equal(t, 1, deps.sessions.Len())
	})

	t.Run("Checkout through fake provider", func(t *testing.T) {
		w := do(http.MethodPost, "/api/cart/checkout", "")
		require.Equal(t, http.StatusOK, w.Code)

		var view storefront.View
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.True(t, strings.HasPrefix(view.RedirectURL, "http://shop.local/success.html?session_id=fake_"))
	})

	t.Run("Server side checkout redirect", func(t *testing.T) {
		w := do(http.MethodPost, "/create-checkout-session", `{"items":[{"productId":"p1","quantity":1}]}`)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "session_id=fake_")
	})

	t.Run("Journal disabled without database", func(t *testing.T) {
		w := do(http.MethodGet, "/api/checkout/sessions/anything", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_CheckoutTimeout(t *testing.T) {
	release := make(chan struct{})
	slowGateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slowGateway.Close)
	t.Cleanup(func() { close(release) })

	cfg := &config.Config{CheckoutTimeout: 200 * time.Millisecond}
	router, _ := newTestApp(t, func(c *config.Config) {
		c.CheckoutEndpoint = slowGateway.URL
		c.CheckoutTimeout = cfg.CheckoutTimeout
	})

	srv := httptest.NewUnstartedServer(router)
	srv.Config = createServer("", router, writeTimeoutFor(cfg))
	srv.Start()
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	resp, err := client.Post(srv.URL+"/api/cart/items", "application/json", strings.NewReader(`{"productId":"p1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/api/cart/checkout", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Contains(t, string(body), storefront.MsgCheckoutFailed)
}

func TestWriteTimeoutFor(t *testing.T) {
	for _, checkoutTimeout := range []time.Duration{
		200 * time.Millisecond,
		15 * time.Second,
		time.Minute,
	} {
		t.Run(checkoutTimeout.String(), func(t *testing.T) {
			got := writeTimeoutFor(&config.Config{CheckoutTimeout: checkoutTimeout})
			assert.Greater(t, got, checkoutTimeout)
			assert.GreaterOrEqual(t, got, serverWriteTimeout)
		})
	}
}

func TestInitLogger(t *testing.T) {
	for _, level := range []string{"development", "production", "debug", "warn"} {
		t.Run(level, func(t *testing.T) {
			logger, err := initLogger(level)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		_, err := initLogger("loud")
		assert.Error(t, err)
	})
}
