package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/provider"
	"github.com/blindbox-next/internal/queue"
	"github.com/blindbox-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	StatusCode int                 `json:"status_code"`
	Msg        string              `json:"msg"`
	Data       json.RawMessage     `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

func setupAdminHandlerTest(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	product := &models.Product{ID: 1, Name: "series", StockCommon: 3, StockRare: 1}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Blindbox.DefaultProbabilities = config.ProbabilityConfig{Common: 60, Rare: 30, Secret: 10}
	h := New(provider.NewContainerWithDB(cfg, db, nil, nil))

	r := gin.New()
	r.GET("/config", h.GetProbabilities)
	r.PUT("/config", h.UpdateProbabilities)
	r.POST("/products/:id/stock", h.AdjustStock)
	r.GET("/draw-records", h.GetDrawRecords)
	return r, h
}

func doRequest(t *testing.T, r *gin.Engine, method, target, body string) apiResponse {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestUpdateProbabilities(t *testing.T) {
	r, h := setupAdminHandlerTest(t)

	resp := doRequest(t, r, http.MethodPut, "/config", `{"common":50,"rare":40,"secret":10}`)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("valid update failed: %+v", resp)
	}
	want := blindbox.Weights{Common: 50, Rare: 40, Secret: 10}
	if h.ProbabilityService.Get() != want {
		t.Fatalf("config not applied: %+v", h.ProbabilityService.Get())
	}

	invalid := []string{
		`{"common":50,"rare":30,"secret":30}`,
		`{"common":50,"rare":50}`,
		`{"common":-10,"rare":100,"secret":10}`,
	}
	for _, body := range invalid {
		resp := doRequest(t, r, http.MethodPut, "/config", body)
		if resp.StatusCode != response.CodeBadRequest {
			t.Fatalf("update %s want 400 got %+v", body, resp)
		}
		if h.ProbabilityService.Get() != want {
			t.Fatalf("rejected update must keep prior config, got %+v", h.ProbabilityService.Get())
		}
	}

	resp = doRequest(t, r, http.MethodGet, "/config", "")
	var got blindbox.Weights
	_ = json.Unmarshal(resp.Data, &got)
	if got != want {
		t.Fatalf("get config want %+v got %+v", want, got)
	}
}

func TestAdjustStock(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)

	resp := doRequest(t, r, http.MethodPost, "/products/1/stock", `{"rarity":"rare","amount":2}`)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("adjust failed: %+v", resp)
	}
	var view service.ProductView
	_ = json.Unmarshal(resp.Data, &view)
	if view.Stock[constants.RarityRare] != 3 {
		t.Fatalf("rare stock want 3 got %d", view.Stock[constants.RarityRare])
	}

	resp = doRequest(t, r, http.MethodPost, "/products/1/stock", `{"rarity":"common","amount":-9}`)
	_ = json.Unmarshal(resp.Data, &view)
	if resp.StatusCode != response.CodeOK || view.Stock[constants.RarityCommon] != 0 {
		t.Fatalf("common stock should clamp to 0: %+v", resp)
	}

	cases := []struct {
		target string
		body   string
		code   int
	}{
		{target: "/products/1/stock", body: `{"rarity":"mythic","amount":1}`, code: response.CodeBadRequest},
		{target: "/products/9/stock", body: `{"rarity":"rare","amount":1}`, code: response.CodeNotFound},
		{target: "/products/x/stock", body: `{"rarity":"rare","amount":1}`, code: response.CodeBadRequest},
		{target: "/products/1/stock", body: `{"rarity":"rare"}`, code: response.CodeBadRequest},
	}
	for _, tc := range cases {
		resp := doRequest(t, r, http.MethodPost, tc.target, tc.body)
		if resp.StatusCode != tc.code {
			t.Fatalf("%s %s want %d got %+v", tc.target, tc.body, tc.code, resp)
		}
	}
}

func TestGetDrawRecords(t *testing.T) {
	r, h := setupAdminHandlerTest(t)
	for i := uint(1); i <= 3; i++ {
		rarity := constants.RarityCommon
		if i == 2 {
			rarity = constants.RarityRare
		}
		err := h.DrawRecordService.Record(queue.BackpackOpenedPayload{
			BackpackItemID: i,
			ProductID:      1,
			RolledRarity:   rarity,
			ResolvedRarity: rarity,
			OpenedAt:       time.Now(),
		}, constants.DrawRecordSourceSync)
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	resp := doRequest(t, r, http.MethodGet, "/draw-records?page=1&page_size=2", "")
	var records []models.DrawRecord
	_ = json.Unmarshal(resp.Data, &records)
	if len(records) != 2 || resp.Pagination.Total != 3 || resp.Pagination.TotalPage != 2 {
		t.Fatalf("unexpected page: len=%d pagination=%+v", len(records), resp.Pagination)
	}

	resp = doRequest(t, r, http.MethodGet, "/draw-records?rarity=RARE", "")
	_ = json.Unmarshal(resp.Data, &records)
	if len(records) != 1 || records[0].BackpackItemID != 2 {
		t.Fatalf("rarity filter failed: %+v", records)
	}
}
