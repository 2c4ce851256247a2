package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	intconfig "normadeck/internal/config"
)

func getPDFRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/functions/get-pdf", GetPDF)
	return r
}

func doGetPDF(t *testing.T, target string, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withAuth {
		req.Header.Set("Authorization", "Bearer anon-key")
	}
	w := httptest.NewRecorder()
	getPDFRouter().ServeHTTP(w, req)
	return w
}

func TestGetPDF_MissingID(t *testing.T) {
	w := doGetPDF(t, "/functions/get-pdf", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetPDF_MissingAuthorization(t *testing.T) {
	w := doGetPDF(t, "/functions/get-pdf?id=abc", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetPDF_SuccessSetsLocationAndBody(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	mock.ExpectQuery("FROM normas WHERE id").
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"pdf_url"}).AddRow("https://x/doc.pdf"))

	w := doGetPDF(t, "/functions/get-pdf?id=abc", true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "https://x/doc.pdf" {
		t.Fatalf("Location header missing or wrong: %q", loc)
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body decode: %v", err)
	}
	if body.URL != "https://x/doc.pdf" {
		t.Fatalf("JSON url missing or wrong: %q", body.URL)
	}
}

func TestGetPDF_RecordWithoutPDF(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	mock.ExpectQuery("FROM normas WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"pdf_url"}))

	w := doGetPDF(t, "/functions/get-pdf?id=missing", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetPDF_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	defer func() { intconfig.DB = nil }()

	mock.ExpectQuery("FROM normas WHERE id").
		WithArgs("abc").
		WillReturnError(sqlmock.ErrCancelled)

	w := doGetPDF(t, "/functions/get-pdf?id=abc", true)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
