package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	expenseapp "github.com/tradeops/backend/internal/application/expense"
	fxapp "github.com/tradeops/backend/internal/application/fx"
	identityapp "github.com/tradeops/backend/internal/application/identity"
	partnerapp "github.com/tradeops/backend/internal/application/partner"
	quotationapp "github.com/tradeops/backend/internal/application/quotation"
	reportapp "github.com/tradeops/backend/internal/application/report"
	workflowapp "github.com/tradeops/backend/internal/application/workflow"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/infrastructure/auth"
	"github.com/tradeops/backend/internal/infrastructure/cache"
	"github.com/tradeops/backend/internal/infrastructure/config"
	"github.com/tradeops/backend/internal/infrastructure/i18n"
	"github.com/tradeops/backend/internal/infrastructure/persistence"
	"github.com/tradeops/backend/internal/interfaces/http/handler"
	"github.com/tradeops/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

type testStack struct {
	engine     *gin.Engine
	principals *persistence.GormPrincipalRepository
	generator  *persistence.GormNumberGenerator
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := persistence.NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-0123456789abcdef",
		RefreshSecret:          "test-refresh-secret-0123456789abcd",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "tradeops-test",
		MaxRefreshCount:        10,
	})

	principals := persistence.NewGormPrincipalRepository(db.DB)
	customers := persistence.NewGormCustomerRepository(db.DB)
	suppliers := persistence.NewGormSupplierRepository(db.DB)
	rates := persistence.NewGormRateRepository(db.DB)
	quotations := persistence.NewGormQuotationRepository(db.DB)
	expenses := persistence.NewGormExpenseRepository(db.DB)
	workflows := persistence.NewGormWorkflowRepository(db.DB)
	reports := persistence.NewGormReportRepository(db.DB)
	generator := persistence.NewGormNumberGenerator(db.DB)

	fxService := fxapp.NewService(rates, cache.NewInMemoryRateCache(time.Minute), nil, logger)
	identityService := identityapp.NewService(principals, generator, jwtService, logger)
	quotationService := quotationapp.NewService(quotations, customers, generator, fxService, logger)
	expenseService := expenseapp.NewService(expenses, principals, generator, logger)
	workflowService := workflowapp.NewService(workflows, quotations, principals, generator, logger)
	reportService := reportapp.NewService(reports, principals, generator, logger)
	partnerService := partnerapp.NewService(customers, suppliers, logger)

	engine := New(Config{
		Handlers: Handlers{
			Auth:      handler.NewAuthHandler(identityService),
			FX:        handler.NewFXHandler(fxService),
			Quotation: handler.NewQuotationHandler(quotationService),
			Expense:   handler.NewExpenseHandler(expenseService),
			Workflow:  handler.NewWorkflowHandler(workflowService),
			Report:    handler.NewReportHandler(reportService),
			Partner:   handler.NewPartnerHandler(partnerService),
			Menu:      handler.NewMenuHandler(i18n.NewTranslator()),
		},
		JWT:  middleware.DefaultJWTConfig(jwtService),
		CORS: middleware.DefaultCORSConfig(),
	})

	return &testStack{engine: engine, principals: principals, generator: generator}
}

// seedPrincipal creates a principal directly in the repository and returns it
func (s *testStack) seedPrincipal(t *testing.T, username string, tier identity.Tier) *identity.Principal {
	t.Helper()
	ctx := context.Background()
	number, err := s.generator.Next(ctx, "P", time.Now())
	require.NoError(t, err)
	p, err := identity.NewPrincipal(number, username, "Test "+username, "pass-"+username)
	require.NoError(t, err)
	if tier != identity.TierRestricted {
		master, err := identity.NewPrincipal(number+"M", username+"-master", "Bootstrap", "bootstrap-pw")
		require.NoError(t, err)
		require.NoError(t, p.AssignTier(tier, master.ID))
	}
	require.NoError(t, s.principals.Save(ctx, p))
	return p
}

func (s *testStack) login(t *testing.T, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, "pass-"+username)
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data identityapp.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Tokens.AccessToken)
	return resp.Data.Tokens.AccessToken
}

func (s *testStack) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsOpen(t *testing.T) {
	s := newTestStack(t)
	w := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestStack(t)
	w := s.do(t, http.MethodGet, "/api/v1/quotations", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LoginAndMe(t *testing.T) {
	s := newTestStack(t)
	s.seedPrincipal(t, "hjkim", identity.TierNormal)
	token := s.login(t, "hjkim")

	w := s.do(t, http.MethodGet, "/api/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"hjkim"`)
	assert.Contains(t, w.Body.String(), `"tier":"NORMAL"`)
}

func TestRouter_TierGatesRoutes(t *testing.T) {
	s := newTestStack(t)
	s.seedPrincipal(t, "intern", identity.TierRestricted)
	token := s.login(t, "intern")

	// Restricted principals can see FX but not quotations or workflows.
	w := s.do(t, http.MethodGet, "/api/v1/fx/history/KRW", "", token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/quotations", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Operation not permitted")

	w = s.do(t, http.MethodGet, "/api/v1/workflows", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_QuotationLifecycle(t *testing.T) {
	s := newTestStack(t)
	s.seedPrincipal(t, "sales", identity.TierNormal)
	token := s.login(t, "sales")

	w := s.do(t, http.MethodPost, "/api/v1/customers",
		`{"code":"HANOI-TEX","name":"Hanoi Textiles","country":"VN"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customerResp struct {
		Data partnerapp.PartnerResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customerResp))

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"date": "2025-04-16T00:00:00Z",
		"valid_until": "2025-05-16T00:00:00Z",
		"items": [{"product":"Cotton fabric","quantity":"100","unit_price":"12.5","currency":"USD"}]
	}`, customerResp.Data.ID)
	w = s.do(t, http.MethodPost, "/api/v1/quotations", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var quotationResp struct {
		Data quotationapp.QuotationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quotationResp))
	assert.Contains(t, quotationResp.Data.Number, "Q20250")

	path := "/api/v1/quotations/" + quotationResp.Data.ID.String()
	w = s.do(t, http.MethodPost, path+"/submit", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, path+"/approve", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
}

func TestRouter_ExpenseDecisionFlow(t *testing.T) {
	s := newTestStack(t)
	s.seedPrincipal(t, "requester", identity.TierRestricted)
	approver := s.seedPrincipal(t, "approver", identity.TierAdvanced)
	token := s.login(t, "requester")
	approverToken := s.login(t, "approver")

	body := fmt.Sprintf(`{
		"title": "Team dinner",
		"category": "ENTERTAINMENT",
		"amount": "250000",
		"currency": "KRW",
		"expected_date": "2025-05-02T00:00:00Z",
		"approvers": [{"approver_id": %q, "required": true}]
	}`, approver.ID)
	w := s.do(t, http.MethodPost, "/api/v1/expenses", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data expenseapp.RequestResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Data.Slots, 1)

	// The requester cannot decide the approver's slot.
	slotPath := "/api/v1/expenses/slots/" + created.Data.Slots[0].ID.String() + "/approve"
	w = s.do(t, http.MethodPost, slotPath, `{"comment":"self-approve"}`, token)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, slotPath, `{"comment":"ok"}`, approverToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
}

func TestRouter_MenuWidensWithTier(t *testing.T) {
	s := newTestStack(t)
	s.seedPrincipal(t, "intern2", identity.TierRestricted)
	s.seedPrincipal(t, "manager", identity.TierAdvanced)

	internMenu := s.do(t, http.MethodGet, "/api/v1/menu", "", s.login(t, "intern2"))
	require.Equal(t, http.StatusOK, internMenu.Code)
	assert.NotContains(t, internMenu.Body.String(), "workflow.view")

	managerMenu := s.do(t, http.MethodGet, "/api/v1/menu", "", s.login(t, "manager"))
	require.Equal(t, http.StatusOK, managerMenu.Code)
	assert.Contains(t, managerMenu.Body.String(), "workflow.view")
}

func TestRouter_LabelsFollowAcceptLanguage(t *testing.T) {
	s := newTestStack(t)
	s.seedPrincipal(t, "bilingual", identity.TierRestricted)
	token := s.login(t, "bilingual")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/labels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Language", "ko-KR")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "정산 완료")
}
