package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"propertywala/internal/auth"
	"propertywala/internal/cache"
	"propertywala/internal/mail"
	"propertywala/internal/repository/sqlite"
	"propertywala/internal/service"
	"propertywala/internal/storage"
)

// recordingSender captures outbound mail instead of delivering it.
type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (s *recordingSender) Send(ctx context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *recordingSender) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	propertyRepo := sqlite.NewPropertyRepository(db)
	blogRepo := sqlite.NewBlogRepository(db)
	subscriberRepo := sqlite.NewSubscriberRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, propertyRepo.Init(ctx))
	require.NoError(t, blogRepo.Init(ctx))
	require.NoError(t, subscriberRepo.Init(ctx))

	issuer := auth.NewIssuer([]byte("test-secret"), time.Hour)
	sessions := cache.NewMemory()
	cacheTTL := 30 * time.Minute

	sender := &recordingSender{}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	store, err := storage.NewLocalService(t.TempDir())
	require.NoError(t, err)

	handler := NewHandler(
		service.NewSessionService(userRepo, issuer, sessions, cacheTTL),
		service.NewUserService(userRepo, sessions, cacheTTL),
		service.NewPropertyService(propertyRepo, userRepo),
		service.NewBlogService(blogRepo),
		service.NewMailService(subscriberRepo, userRepo, mail.NewDispatcher(sender, 2, logger), logger),
		store,
		logger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router, sender
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) *http.Cookie {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name": "Joe", "email": email, "password": "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "registered")

	rec = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": email, "password": "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookieFrom(t, rec)
}

func TestHealthRoute(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "api is live", rec.Body.String())
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name": "Joe", "email": "joe@example.com", "password": "alllower1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password should contain")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "joe@example.com")

	rec := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name": "Other", "email": "joe@example.com", "password": "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Email id already Taken")
}

func TestLoginErrors(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "joe@example.com")

	rec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "nobody@example.com", "password": "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Email not registered, register first")

	rec = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "joe@example.com", "password": "WrongPass1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Incorrect password!")
}

func TestVerify(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/auth/verify", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/auth/verify", nil,
		&http.Cookie{Name: sessionCookie, Value: "not.a.token"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	cookie := registerAndLogin(t, router, "joe@example.com")
	rec = doJSON(t, router, http.MethodGet, "/auth/verify", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "joe@example.com")
}

func TestWishlistToggleRoute(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/wishlist/p1", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := registerAndLogin(t, router, "joe@example.com")

	rec = doJSON(t, router, http.MethodPost, "/wishlist/p1", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"added":true`)

	rec = doJSON(t, router, http.MethodPost, "/wishlist/p1", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"added":false`)
}

func TestListAndFetchProperty(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "joe@example.com")

	rec := doJSON(t, router, http.MethodPost, "/properties/listProperty", gin.H{
		"property": gin.H{
			"propertyName":    "Sunny Villa",
			"propertyPrice":   250000,
			"propertyCity":    "Pune",
			"propertyPurpose": "sale",
		},
		"user_id": "someone",
		"images":  []string{"img1.jpg"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Property listed successfully")

	var created struct {
		Property struct {
			ID string `json:"_id"`
		} `json:"property"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Property.ID)

	rec = doJSON(t, router, http.MethodGet, "/properties/property-detail/"+created.Property.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sunny Villa")

	rec = doJSON(t, router, http.MethodGet, "/properties/show-properties/sale", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sunny Villa")

	rec = doJSON(t, router, http.MethodGet, "/properties/show-properties/rent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "Sunny Villa")
}

func TestBlogRoutes(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/blogs/insert", gin.H{
		"blog":  gin.H{"blogTitle": "Market Watch", "blogContent": "Prices are up."},
		"image": "cover.jpg",
		"user":  gin.H{"name": "Joe", "_id": "u1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Blog uploaded", rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/blogs/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Market Watch")
}

func TestSubscribeSendsWelcomeMail(t *testing.T) {
	t.Parallel()

	router, sender := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/mail/fan@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	require.Equal(t, "fan@example.com", sender.sent[0].To)
	require.Contains(t, sender.sent[0].Subject, "Welcome")
}

func TestProfileImageRoundTrip(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	registerAndLogin(t, router, "joe@example.com")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("profileImage", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)

	// look the user id up from the login response via verify
	loginRec := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "joe@example.com", "password": "Secret123",
	})
	var loginResp struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginResp))
	require.NoError(t, writer.WriteField("userId", loginResp.User.ID))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploadProfileImage", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	uploadRec := httptest.NewRecorder()
	router.ServeHTTP(uploadRec, req)
	require.Equal(t, http.StatusOK, uploadRec.Code)

	var uploadResp struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(uploadRec.Body.Bytes(), &uploadResp))
	require.True(t, strings.HasSuffix(uploadResp.Key, "avatar.png"))

	getRec := doJSON(t, router, http.MethodGet, "/profileImage/"+uploadResp.Key, nil)
	require.Equal(t, http.StatusOK, getRec.Code)
	require.Equal(t, "fake image bytes", getRec.Body.String())
}
