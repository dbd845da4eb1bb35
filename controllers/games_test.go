package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JerishBovas/ScavengerHunt-API/middleware"
	"github.com/JerishBovas/ScavengerHunt-API/services"
	redisservice "github.com/JerishBovas/ScavengerHunt-API/services/redis"
	"github.com/JerishBovas/ScavengerHunt-API/utils"
)

const testEmail = "hunter@example.com"

type stubStore struct {
	url string
	err error
}

func (s *stubStore) SaveImage(data []byte, name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func newTestRouter(t *testing.T, store *stubStore) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	mr := miniredis.RunT(t)
	svc := services.NewGameService(db, store, redisservice.NewRedisClient(mr.Addr(), 0), zap.NewNop())

	router := gin.New()
	router.Use(sessions.Sessions("mysession", cookie.NewStore([]byte("test-secret"))))

	// Test-only hook standing in for the identity issuer.
	router.POST("/session", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(middleware.SessionEmailKey, testEmail)
		assert.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	api := router.Group("/api/v1")
	games := api.Group("/games")
	games.Use(middleware.AuthRequired)
	{
		games.GET("", ListGames(svc))
		games.POST("", CreateGame(svc))
		games.PUT("/image", UploadGameImage(svc))
		games.GET("/:id", GetGame(svc))
		games.PUT("/:id", UpdateGame(svc))
		games.DELETE("/:id", DeleteGame(svc))
	}
	return router, mock
}

func login(t *testing.T, router *gin.Engine) []*http.Cookie {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func do(router *gin.Engine, method, target string, body *bytes.Buffer, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func gameColumns() []string {
	return []string{
		"id", "user_id", "is_private", "name", "description", "address", "country",
		"coordinate_latitude", "coordinate_longitude", "image_name", "difficulty",
		"tags", "created_at", "last_updated",
	}
}

func expectUser(mock sqlmock.Sqlmock, id uuid.UUID) {
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "image_name", "member_since"}).
			AddRow(id.String(), testEmail, "Hunter", "", time.Now()))
}

func validPayload() *bytes.Buffer {
	body, _ := json.Marshal(gin.H{
		"isPrivate":   false,
		"name":        "Harbourfront hunt",
		"description": "Ten stops along the waterfront",
		"address":     "235 Queens Quay W",
		"country":     "Canada",
		"coordinate":  gin.H{"latitude": 43.64, "longitude": -79.38},
		"imageName":   "harbour.png",
		"difficulty":  2,
		"tags":        []string{"outdoor"},
	})
	return bytes.NewBuffer(body)
}

func TestGamesRequireSession(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{})

	w := do(router, http.MethodGet, "/api/v1/games", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListGamesReturnsOnlyPublic(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{})
	cookies := login(t, router)
	publicID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(gameColumns()).
		AddRow(publicID.String(), uuid.New().String(), false, "Public hunt", "", "", "Canada",
			43.65, -79.38, "", 1, "{}", now, now).
		AddRow(uuid.New().String(), uuid.New().String(), true, "Private hunt", "", "", "Canada",
			43.65, -79.38, "", 1, "{}", now, now)
	mock.ExpectQuery(`SELECT \* FROM "games"`).WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "name", "description", "image_name"}))
	mock.ExpectQuery(`SELECT \* FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "value"}))

	w := do(router, http.MethodGet, "/api/v1/games", nil, "", cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var games []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	assert.Len(t, games, 1)
	assert.Equal(t, publicID.String(), games[0]["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGameUnknownIdIs404(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{})
	cookies := login(t, router)

	mock.ExpectQuery(`SELECT \* FROM "games" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(gameColumns()))

	w := do(router, http.MethodGet, "/api/v1/games/"+uuid.NewString(), nil, "", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var payload utils.RequestError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []string{"Requested game not found"}, payload.Details)
}

func TestGetGameMalformedIdIs404(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{})
	cookies := login(t, router)

	w := do(router, http.MethodGet, "/api/v1/games/not-a-uuid", nil, "", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGameReturnsCreatedId(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{})
	cookies := login(t, router)

	expectUser(mock, uuid.New())
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "games"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := do(router, http.MethodPost, "/api/v1/games", validPayload(), "application/json", cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGameValidationFailureListsFields(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{})
	cookies := login(t, router)

	body, _ := json.Marshal(gin.H{"description": "missing everything else"})
	w := do(router, http.MethodPost, "/api/v1/games", bytes.NewBuffer(body), "application/json", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var payload utils.RequestError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Validation Error", payload.Title)
	assert.NotEmpty(t, payload.Details)
}

func TestUpdateGameForeignIdIs404(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{})
	cookies := login(t, router)

	expectUser(mock, uuid.New())
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(gameColumns()))
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(gameColumns()))

	w := do(router, http.MethodPut, "/api/v1/games/"+uuid.NewString(), validPayload(), "application/json", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var payload utils.RequestError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []string{"Game not found"}, payload.Details)
}

func TestDeleteGameNotOwnedIs400(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{})
	cookies := login(t, router)
	now := time.Now()

	expectUser(mock, uuid.New())
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(gameColumns()).
			AddRow(uuid.NewString(), uuid.NewString(), false, "Foreign", "", "", "Canada",
				43.65, -79.38, "", 1, "{}", now, now))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "name", "description", "image_name"}))
	mock.ExpectQuery(`SELECT \* FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "value"}))

	w := do(router, http.MethodDelete, "/api/v1/games/"+uuid.NewString(), nil, "", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var payload utils.RequestError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []string{"Game with provided ID not found."}, payload.Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "cover.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadImageReturnsPath(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{url: "http://cdn.local/images/x.png"})
	cookies := login(t, router)
	expectUser(mock, uuid.New())

	body, contentType := multipartImage(t)
	w := do(router, http.MethodPut, "/api/v1/games/image", body, contentType, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "http://cdn.local/images/x.png", resp["imagePath"])
}

func TestUploadImageStorageFaultIs502(t *testing.T) {
	router, mock := newTestRouter(t, &stubStore{err: errors.New("blob container unreachable")})
	cookies := login(t, router)
	expectUser(mock, uuid.New())

	body, contentType := multipartImage(t)
	w := do(router, http.MethodPut, "/api/v1/games/image", body, contentType, cookies)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var payload utils.RequestError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Bad Gateway Error", payload.Title)
	assert.Equal(t, []string{"blob container unreachable"}, payload.Details)
}
