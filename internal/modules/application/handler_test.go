package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"applyhub/internal/domain"
	"applyhub/internal/modules/resume"
	"applyhub/internal/razorpay"
	"applyhub/internal/repository"
)

func setupTestRouterWithGateway(t *testing.T, gatewayHandler http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:application_handler_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Application{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	gatewaySrv := httptest.NewServer(gatewayHandler)
	t.Cleanup(gatewaySrv.Close)

	store, err := resume.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create resume store: %v", err)
	}

	repo := repository.NewApplicationRepository(db)
	gateway := razorpay.NewClient(gatewaySrv.URL, "rzp_test_key", "secret")
	service := NewService(repo, store, gateway, "rzp_test_key", 500, "INR", nil)

	r := gin.New()
	api := r.Group("/api")
	NewHandler(service).RegisterRoutes(api)
	return r
}

func setupTestRouter(t *testing.T) *gin.Engine {
	var seq int64
	return setupTestRouterWithGateway(t, func(w http.ResponseWriter, r *http.Request) {
		id := atomic.AddInt64(&seq, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"order_test_%d","amount":50000,"currency":"INR","status":"created"}`, id)
	})
}

func doSubmitRequest(t *testing.T, r http.Handler, fields map[string]string, filename string, fileSize int) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if filename != "" {
		fw, err := w.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(bytes.Repeat([]byte("r"), fileSize)); err != nil {
			t.Fatalf("write resume: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submit", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func submitFields() map[string]string {
	return map[string]string{
		"full_name": "Dana Yerzhanova",
		"email":     "dana@example.com",
		"phone":     "+7 702 123 45 67",
		"gender":    "female",
		"dob":       "2000-07-19",
		"bio":       "qa engineer",
	}
}

func TestSubmitEndpoint_Success(t *testing.T) {
	r := setupTestRouter(t)

	rr := doSubmitRequest(t, r, submitFields(), "cv.pdf", 1024)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid submit response: %v", err)
	}
	orderID, _ := resp["orderId"].(string)
	if !strings.HasPrefix(orderID, "order_test_") {
		t.Fatalf("expected gateway order id, got %v", resp["orderId"])
	}
	if resp["key"] != "rzp_test_key" {
		t.Fatalf("expected checkout key in response, got %v", resp["key"])
	}
	if resp["amount"].(float64) != 50000 {
		t.Fatalf("expected amount 50000, got %v", resp["amount"])
	}

	// record is stored as PENDING with no payment id yet
	rr = doJSONRequest(r, http.MethodGet, "/api/applications", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for list, got %d", rr.Code)
	}
	var apps []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0]["payment_status"] != "PENDING" {
		t.Fatalf("expected PENDING status, got %v", apps[0]["payment_status"])
	}
	if apps[0]["full_name"] != "Dana Yerzhanova" {
		t.Fatalf("expected stored form fields, got %v", apps[0]["full_name"])
	}
	if apps[0]["payment_id"] != nil {
		t.Fatalf("expected null payment_id, got %v", apps[0]["payment_id"])
	}
	if apps[0]["order_id"] != orderID {
		t.Fatalf("expected order id %s on record, got %v", orderID, apps[0]["order_id"])
	}
	if resumeName, _ := apps[0]["resume"].(string); !strings.HasSuffix(resumeName, ".pdf") {
		t.Fatalf("expected stored resume name, got %v", apps[0]["resume"])
	}
}

func TestSubmitEndpoint_MissingFile(t *testing.T) {
	r := setupTestRouter(t)

	rr := doSubmitRequest(t, r, submitFields(), "", 0)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}
	if resp["error"] != "resume file is required" {
		t.Fatalf("unexpected error message %q", resp["error"])
	}
}

func TestSubmitEndpoint_RejectedFiles(t *testing.T) {
	r := setupTestRouter(t)

	cases := []struct {
		name     string
		filename string
		size     int
		wantMsg  string
	}{
		{"bad extension", "cv.txt", 10, "resume file type is not allowed"},
		{"oversized", "cv.pdf", resume.MaxFileSize + 1, "resume exceeds maximum allowed size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doSubmitRequest(t, r, submitFields(), tc.filename, tc.size)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error response: %v", err)
			}
			if resp["error"] != tc.wantMsg {
				t.Fatalf("unexpected error message %q", resp["error"])
			}
		})
	}

	// nothing was persisted for rejected submissions
	rr := doJSONRequest(r, http.MethodGet, "/api/applications", nil)
	var apps []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("expected no applications, got %d", len(apps))
	}
}

func TestSubmitEndpoint_GatewayDown(t *testing.T) {
	r := setupTestRouterWithGateway(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":"SERVER_ERROR","description":"try later"}}`))
	})

	rr := doSubmitRequest(t, r, submitFields(), "cv.pdf", 1024)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}
	if resp["error"] != "payment gateway unavailable" {
		t.Fatalf("unexpected error message %q", resp["error"])
	}

	// the record must not exist without an order
	rr = doJSONRequest(r, http.MethodGet, "/api/applications", nil)
	var apps []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("expected no applications after gateway failure, got %d", len(apps))
	}
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	rr := doSubmitRequest(t, r, submitFields(), "cv.pdf", 512)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", rr.Code, rr.Body.String())
	}
	var submitResp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &submitResp); err != nil {
		t.Fatalf("invalid submit response: %v", err)
	}
	orderID := submitResp["orderId"].(string)

	verify := map[string]any{"order_id": orderID, "payment_id": "pay_55", "status": "paid"}
	rr = doJSONRequest(r, http.MethodPost, "/api/verify-payment", verify)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var verifyResp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &verifyResp); err != nil {
		t.Fatalf("invalid verify response: %v", err)
	}
	if verifyResp["success"] != true {
		t.Fatalf("expected success true, got %v", verifyResp["success"])
	}

	// outcome is visible on the listing
	rr = doJSONRequest(r, http.MethodGet, "/api/applications", nil)
	var apps []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if apps[0]["payment_status"] != "paid" || apps[0]["payment_id"] != "pay_55" {
		t.Fatalf("expected reconciled record, got %+v", apps[0])
	}

	// repeating the same report is harmless
	rr = doJSONRequest(r, http.MethodPost, "/api/verify-payment", verify)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat, got %d", rr.Code)
	}
}

func TestVerifyPaymentEndpoint_UnknownOrder(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/verify-payment", map[string]any{
		"order_id":   "order_ghost",
		"payment_id": "pay_1",
		"status":     "failed",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown order, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid verify response: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success true, got %v", resp["success"])
	}
}

func TestVerifyPaymentEndpoint_MalformedBody(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-payment", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}
	if resp["error"] != "invalid request body" {
		t.Fatalf("unexpected error message %q", resp["error"])
	}
}

func TestListEndpoint_EmptyArray(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodGet, "/api/applications", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty array body, got %s", rr.Body.String())
	}
}

func TestListEndpoint_NewestFirst(t *testing.T) {
	r := setupTestRouter(t)

	first := submitFields()
	first["full_name"] = "First Applicant"
	if rr := doSubmitRequest(t, r, first, "a.pdf", 100); rr.Code != http.StatusOK {
		t.Fatalf("first submit failed: %d", rr.Code)
	}

	second := submitFields()
	second["full_name"] = "Second Applicant"
	if rr := doSubmitRequest(t, r, second, "b.pdf", 100); rr.Code != http.StatusOK {
		t.Fatalf("second submit failed: %d", rr.Code)
	}

	rr := doJSONRequest(r, http.MethodGet, "/api/applications", nil)
	var apps []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	if apps[0]["full_name"] != "Second Applicant" {
		t.Fatalf("expected newest first, got %v", apps[0]["full_name"])
	}
}
