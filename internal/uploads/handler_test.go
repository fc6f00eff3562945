package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"halo-backend/internal/analysis"
)

type fakeAnalysisClient struct {
	imageOutcome analysis.Outcome
	textOutcome  analysis.Outcome
	lastItems    []string
}

func (f *fakeAnalysisClient) AnalyzeImage(ctx context.Context, image []byte) (analysis.Outcome, error) {
	return f.imageOutcome, nil
}

func (f *fakeAnalysisClient) AnalyzeText(ctx context.Context, items []string) (analysis.Outcome, error) {
	f.lastItems = items
	return f.textOutcome, nil
}

func setupRouter(client analysis.Client, repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(NewService(repo, nil), client)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 7)
		c.Next()
	})
	r.POST("/api/process-menu", handler.ProcessMenu)
	r.POST("/api/process-manual-input", handler.ProcessManualInput)
	r.GET("/api/menu-uploads", handler.List)
	r.GET("/api/menu-uploads/:id", handler.Get)
	r.PUT("/api/menu-uploads/:id", handler.Rename)
	r.DELETE("/api/menu-uploads/:id", handler.Delete)
	return r
}

func menuImageRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("menu_image", filename)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	part.Write(data)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/process-menu", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func smallJPEG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32)), nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessMenuStoresResultAndRespondsWithItems(t *testing.T) {
	client := &fakeAnalysisClient{
		imageOutcome: analysis.Outcome{
			State: analysis.OutcomeSuccess,
			Items: []analysis.MenuItem{
				{ItemName: "Soup", CommonAllergens: []string{"Milk"}, ConfidenceScore: 8},
			},
		},
	}
	repo := NewInMemoryRepository()
	router := setupRouter(client, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, menuImageRequest(t, "dinner menu.jpg", smallJPEG(t)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var items []analysis.MenuItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("response is not a menu item array: %v", err)
	}
	if len(items) != 1 || items[0].ItemName != "Soup" {
		t.Errorf("unexpected response items: %v", items)
	}

	stored, err := repo.List(context.Background(), 7, 0)
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected one stored upload, got %v (%v)", stored, err)
	}
	if stored[0].UploadName != "dinner menu" {
		t.Errorf("expected upload name from filename without extension, got %q", stored[0].UploadName)
	}
}

func TestProcessMenuWithoutFile(t *testing.T) {
	router := setupRouter(&fakeAnalysisClient{}, NewInMemoryRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process-menu", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No file uploaded") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestProcessMenuRejectsUnsupportedExtension(t *testing.T) {
	router := setupRouter(&fakeAnalysisClient{}, NewInMemoryRepository())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, menuImageRequest(t, "menu.pdf", []byte("%PDF-1.4")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unsupported file type") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestProcessMenuUnreadableImage(t *testing.T) {
	client := &fakeAnalysisClient{
		imageOutcome: analysis.Outcome{State: analysis.OutcomeModelError},
	}
	repo := NewInMemoryRepository()
	router := setupRouter(client, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, menuImageRequest(t, "menu.jpg", smallJPEG(t)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Menu image is too blurry or unreadable") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}

	stored, _ := repo.List(context.Background(), 7, 0)
	if len(stored) != 0 {
		t.Error("failed analyses must not be stored")
	}
}

func TestProcessMenuEmptyModelResponse(t *testing.T) {
	client := &fakeAnalysisClient{
		imageOutcome: analysis.Outcome{State: analysis.OutcomeEmpty},
	}
	router := setupRouter(client, NewInMemoryRepository())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, menuImageRequest(t, "menu.jpg", smallJPEG(t)))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No response from Gemini") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestProcessManualInputSanitizesItems(t *testing.T) {
	client := &fakeAnalysisClient{
		textOutcome: analysis.Outcome{
			State: analysis.OutcomeSuccess,
			Items: []analysis.MenuItem{
				{ItemName: "Pizza", CommonAllergens: []string{"Wheat", "Milk"}, ConfidenceScore: 9},
				{ItemName: "Bicycle", CommonAllergens: []string{"Unknown"}, ConfidenceScore: 0},
			},
		},
	}
	repo := NewInMemoryRepository()
	router := setupRouter(client, repo)

	body := `{"menu_items": ["  Pizza ", "", "Bicycle"], "menu_name": ""}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process-manual-input", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(client.lastItems) != 2 || client.lastItems[0] != "Pizza" || client.lastItems[1] != "Bicycle" {
		t.Errorf("expected sanitized items to reach the client, got %v", client.lastItems)
	}

	stored, _ := repo.List(context.Background(), 7, 0)
	if len(stored) != 1 || stored[0].UploadName != "Manual Input" {
		t.Errorf("expected a stored upload named %q, got %v", "Manual Input", stored)
	}
	if stored[0].AnalysisResult[1].ConfidenceScore != 0 {
		t.Error("non-food entries must keep confidence 0")
	}
}

func TestProcessManualInputWithoutItems(t *testing.T) {
	router := setupRouter(&fakeAnalysisClient{}, NewInMemoryRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process-manual-input", strings.NewReader(`{"menu_items": ["  ", ""]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No menu items provided") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestProcessManualInputModelError(t *testing.T) {
	client := &fakeAnalysisClient{
		textOutcome: analysis.Outcome{State: analysis.OutcomeModelError},
	}
	router := setupRouter(client, NewInMemoryRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process-manual-input", strings.NewReader(`{"menu_items": ["qwertyuiop"]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid menu items") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestListUploadsHonorsLimitQuery(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 0; i < 3; i++ {
		repo.Save(context.Background(), &MenuUpload{UserID: 7, UploadName: "Menu"})
	}
	router := setupRouter(&fakeAnalysisClient{}, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu-uploads?limit=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		MenuUploads []MenuUpload `json:"menu_uploads"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.MenuUploads) != 2 {
		t.Errorf("expected 2 uploads, got %d", len(resp.MenuUploads))
	}
}

func TestListUploadsIgnoresMalformedLimit(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 0; i < 3; i++ {
		repo.Save(context.Background(), &MenuUpload{UserID: 7, UploadName: "Menu"})
	}
	router := setupRouter(&fakeAnalysisClient{}, repo)

	for _, limit := range []string{"abc", "-1", "0"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu-uploads?limit="+limit, nil))

		var resp struct {
			MenuUploads []MenuUpload `json:"menu_uploads"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("limit %q: failed to decode response: %v", limit, err)
		}
		if len(resp.MenuUploads) != 3 {
			t.Errorf("limit %q: expected all 3 uploads, got %d", limit, len(resp.MenuUploads))
		}
	}
}

func TestGetUnknownUploadReturns404(t *testing.T) {
	router := setupRouter(&fakeAnalysisClient{}, NewInMemoryRepository())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu-uploads/42", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Menu upload not found") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestGetForeignUploadReturns404(t *testing.T) {
	repo := NewInMemoryRepository()
	foreign := &MenuUpload{UserID: 99, UploadName: "Someone else"}
	repo.Save(context.Background(), foreign)
	router := setupRouter(&fakeAnalysisClient{}, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu-uploads/1", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's upload, got %d", w.Code)
	}
}

func TestRenameUploadValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Save(context.Background(), &MenuUpload{UserID: 7, UploadName: "Dinner"})
	router := setupRouter(&fakeAnalysisClient{}, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/menu-uploads/1", strings.NewReader(`{"upload_name": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/menu-uploads/abc", strings.NewReader(`{"upload_name": "Lunch"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestRenameUploadSucceeds(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Save(context.Background(), &MenuUpload{UserID: 7, UploadName: "Dinner"})
	router := setupRouter(&fakeAnalysisClient{}, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/menu-uploads/1", strings.NewReader(`{"upload_name": "Lunch"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var upload MenuUpload
	if err := json.Unmarshal(w.Body.Bytes(), &upload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if upload.UploadName != "Lunch" {
		t.Errorf("expected renamed upload in response, got %q", upload.UploadName)
	}
}

func TestDeleteUpload(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Save(context.Background(), &MenuUpload{UserID: 7, UploadName: "Dinner"})
	router := setupRouter(&fakeAnalysisClient{}, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/menu-uploads/1", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/menu-uploads/1", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}
