package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"decorhub/database"
	"decorhub/database/repository"
	"decorhub/events"
	"decorhub/handlers"
	"decorhub/models"
	"decorhub/services/analytics"
	"decorhub/services/assignment"
	"decorhub/services/booking"
	"decorhub/services/catalog"
	"decorhub/services/decorator"
	"decorhub/services/guard"
	"decorhub/services/identity"
	"decorhub/services/payment"
	"decorhub/services/user"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminEmail     = "admin@decorhub.test"
	customerEmail  = "amina@decorhub.test"
	decoratorEmail = "nadia@decorhub.test"
)

// fakeProcessor settles every checkout it created as paid.
type fakeProcessor struct {
	sessions map[string]*payment.CheckoutSession
}

func (p *fakeProcessor) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	id := fmt.Sprintf("cs_test_%d", len(p.sessions)+1)
	p.sessions[id] = &payment.CheckoutSession{
		ID:            id,
		URL:           "https://checkout.stripe.test/" + id,
		PaymentStatus: "paid",
		PaymentIntent: "pi_" + id,
		AmountTotal:   req.UnitAmount,
		Currency:      req.Currency,
		Metadata:      map[string]string{"bookingId": req.BookingID, "customer": req.CustomerEmail, "serviceName": req.ServiceName},
	}
	return p.sessions[id], nil
}

func (p *fakeProcessor) RetrieveSession(_ context.Context, id string) (*payment.CheckoutSession, error) {
	s, ok := p.sessions[id]
	if !ok {
		return nil, utils.NotFound("checkout session not found")
	}
	return s, nil
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	tokens map[string]string
}

func (a *apiClient) do(email, method, path string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[email])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	repos := repository.NewMemoryRepositories()

	_, _, err := repos.Users.UpsertLogin(context.Background(), &models.User{Email: adminEmail, Role: models.RoleAdmin}, time.Now())
	require.NoError(t, err)

	verifier, err := identity.NewJWTVerifier("routes-test-secret")
	require.NoError(t, err)
	tokens := map[string]string{}
	for _, email := range []string{adminEmail, customerEmail, decoratorEmail} {
		tokens[email], err = verifier.IssueToken(email, "", time.Hour)
		require.NoError(t, err)
	}

	roleGuard := guard.NewRoleGuard(repos.Users)
	coordinator := assignment.NewCoordinator(repos.Decorators, logger)
	tx := database.NoopTransactor{}
	pub := events.NoopPublisher{}

	paymentSvc := &payment.Service{
		Bookings:  repos.Bookings,
		Payments:  repos.Payments,
		Processor: &fakeProcessor{sessions: map[string]*payment.CheckoutSession{}},
		Guard:     roleGuard,
		Tx:        tx,
		Events:    pub,
		Settings:  payment.Settings{Currency: "bdt", ClientDomain: "http://localhost:5173", Timeout: time.Second},
		Logger:    logger,
	}

	hb := &handlers.HandlerBundle{
		Verifier: verifier,
		Guard:    roleGuard,
		Booking: handlers.NewBookingHandler(&booking.LifecycleManager{
			Bookings:    repos.Bookings,
			Services:    repos.Services,
			Decorators:  repos.Decorators,
			Guard:       roleGuard,
			Coordinator: coordinator,
			Tx:          tx,
			Events:      pub,
			Flow:        models.FlowCheckout,
			Logger:      logger,
		}),
		Payment: handlers.NewPaymentHandler(paymentSvc, nil),
		Catalog: handlers.NewCatalogHandler(&catalog.Service{Repo: repos.Services, Guard: roleGuard, Logger: logger}),
		Decorator: handlers.NewDecoratorHandler(&decorator.Service{
			Decorators:  repos.Decorators,
			Bookings:    repos.Bookings,
			Users:       repos.Users,
			Guard:       roleGuard,
			Coordinator: coordinator,
			Tx:          tx,
			Events:      pub,
			Logger:      logger,
		}),
		User:    handlers.NewUserHandler(&user.DefaultUserService{Repo: repos.Users, Guard: roleGuard, Logger: logger}),
		Admin:   handlers.NewAdminHandler(&analytics.Service{Repo: repos.Analytics, Guard: roleGuard}),
		Storage: handlers.NewStorageHandler(nil),
	}

	router := gin.New()
	RegisterRoutes(router, hb)
	return &apiClient{t: t, router: router, tokens: tokens}
}

func TestBookingJourney(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(customerEmail, http.MethodPost, "/user", map[string]string{"email": customerEmail, "name": "Amina"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = api.do(decoratorEmail, http.MethodPost, "/user", map[string]string{"name": "Nadia"})
	require.Equal(t, http.StatusCreated, code)

	// Catalog.
	code, svc := api.do(adminEmail, http.MethodPost, "/services", map[string]any{"name": "Wedding Stage", "category": "wedding", "price": 500})
	require.Equal(t, http.StatusCreated, code)
	serviceID := svc["id"].(string)

	code, _ = api.do(customerEmail, http.MethodPost, "/services", map[string]any{"name": "Sneaky", "category": "x", "price": 1})
	assert.Equal(t, http.StatusForbidden, code)

	// Booking and duplicate detection.
	bookingBody := map[string]string{"serviceId": serviceID, "bookingDate": "2026-12-20", "location": "Dhaka"}
	code, created := api.do(customerEmail, http.MethodPost, "/bookings", bookingBody)
	require.Equal(t, http.StatusCreated, code)
	bookingID := created["booking"].(map[string]any)["id"].(string)

	code, dup := api.do(customerEmail, http.MethodPost, "/bookings", bookingBody)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, dup["duplicate"])

	// Decorator onboarding.
	code, applied := api.do(decoratorEmail, http.MethodPost, "/become-decorator", map[string]string{"name": "Nadia", "district": "Dhaka"})
	require.Equal(t, http.StatusCreated, code)
	decoratorID := applied["id"].(string)

	code, _ = api.do(adminEmail, http.MethodPatch, "/decorators/"+decoratorID, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, code)
	code, role := api.do(customerEmail, http.MethodGet, "/user/role/"+decoratorEmail, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "decorator", role["role"])

	// Payment.
	code, checkout := api.do(customerEmail, http.MethodPost, "/create-checkout-session", map[string]string{"bookingId": bookingID})
	require.Equal(t, http.StatusOK, code)
	sessionID := checkout["sessionId"].(string)

	code, paid := api.do("", http.MethodPatch, "/payment-success?session_id="+sessionID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, paid["duplicate"])
	code, again := api.do("", http.MethodPatch, "/payment-success?session_id="+sessionID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, again["duplicate"])
	assert.Equal(t, paid["paymentId"], again["paymentId"])

	// A paid booking can no longer be cancelled by its owner.
	code, _ = api.do(customerEmail, http.MethodDelete, "/bookings/"+bookingID, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Assignment and progress.
	code, _ = api.do(adminEmail, http.MethodPatch, "/booking/"+bookingID, map[string]string{"decoratorId": decoratorID})
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(decoratorEmail, http.MethodPatch, "/bookings/"+bookingID+"/status", map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, code)
	code, _ = api.do(decoratorEmail, http.MethodPatch, "/bookings/"+bookingID+"/status", map[string]string{"status": "in_progress"})
	assert.Equal(t, http.StatusOK, code)

	// Reports.
	code, report := api.do(adminEmail, http.MethodGet, "/admin/analytics", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 500, report["totalRevenue"])
	code, _ = api.do(customerEmail, http.MethodGet, "/admin/analytics", nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do("", http.MethodPost, "/bookings", map[string]string{"serviceId": "svc"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do("", http.MethodGet, "/services", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do("", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUploadWithoutStorage(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(adminEmail, http.MethodPost, "/uploads/image", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
