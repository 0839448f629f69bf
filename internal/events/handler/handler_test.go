package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lankaconnect/internal/events/service"
	eventstore "lankaconnect/internal/events/store/event"
	"lankaconnect/internal/platform/middleware"
	"lankaconnect/pkg/testutil"
)

func newEventRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.NewEventService(eventstore.NewInMemory())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Use(middleware.RequestMeta)
	h.Register(r)
	return r
}

func createEventViaAPI(t *testing.T, router http.Handler, capacity int) string {
	t.Helper()
	payload := map[string]any{
		"organizer_id": uuid.NewString(),
		"title":        "Poya Day Community Fair",
		"description":  "stalls and performances",
		"start_at":     time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"end_at":       time.Now().Add(54 * time.Hour).UTC().Format(time.RFC3339),
		"capacity":     capacity,
	}
	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/events", payload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating event, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := testutil.UnmarshalResponse[EventResponse](t, rec)
	if resp.ID == "" {
		t.Fatalf("expected event id in response")
	}
	if resp.Status != "draft" {
		t.Fatalf("expected draft status, got %q", resp.Status)
	}
	return resp.ID
}

func publishViaAPI(t *testing.T, router http.Handler, eventID string) {
	t.Helper()
	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/events/"+eventID+"/publish"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 publishing event, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 25)

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/events/"+eventID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching event, got %d", rec.Code)
	}

	var resp struct {
		ID             string `json:"id"`
		Capacity       int    `json:"capacity"`
		ConfirmedCount int    `json:"confirmed_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode event response: %v", err)
	}
	if resp.ID != eventID {
		t.Fatalf("expected event id %s, got %s", eventID, resp.ID)
	}
	if resp.Capacity != 25 || resp.ConfirmedCount != 0 {
		t.Fatalf("unexpected capacity %d / confirmed %d", resp.Capacity, resp.ConfirmedCount)
	}
}

func TestGetEventNotFound(t *testing.T) {
	router := newEventRouter(t)

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/events/"+uuid.NewString()))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", rec.Code)
	}
	testutil.AssertErrorCode(t, rec, "not_found")
}

func TestCreateEventValidation(t *testing.T) {
	router := newEventRouter(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing organizer", map[string]any{
			"title":    "No Organizer",
			"start_at": time.Now().Add(time.Hour), "end_at": time.Now().Add(2 * time.Hour),
			"capacity": 5,
		}},
		{"blank title", map[string]any{
			"organizer_id": uuid.NewString(),
			"title":        "   ",
			"start_at":     time.Now().Add(time.Hour), "end_at": time.Now().Add(2 * time.Hour),
			"capacity":     5,
		}},
		{"negative price", map[string]any{
			"organizer_id": uuid.NewString(),
			"title":        "Paid",
			"start_at":     time.Now().Add(time.Hour), "end_at": time.Now().Add(2 * time.Hour),
			"capacity":     5,
			"ticket_price": map[string]any{"amount": -100, "currency": "LKR"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/events", tt.payload))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			testutil.AssertErrorCode(t, rec, "invalid_input")
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		rec := testutil.DoRequest(router,
			testutil.NewRequestWithBody(t, http.MethodPost, "/events", "{not json"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
		}
	})
}

func TestRegistrationEndpoints(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 2)
	publishViaAPI(t, router, eventID)
	userID := uuid.NewString()

	register := func(user string, quantity int) int {
		rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
			http.MethodPost, "/events/"+eventID+"/registrations",
			map[string]any{"user_id": user, "quantity": quantity}))
		return rec.Code
	}

	if code := register(userID, 2); code != http.StatusNoContent {
		t.Fatalf("expected 204 registering, got %d", code)
	}
	if code := register(uuid.NewString(), 1); code != http.StatusConflict {
		t.Fatalf("expected 409 registering past capacity, got %d", code)
	}

	// Shrink and grow the registration.
	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPut, "/events/"+eventID+"/registrations/"+userID,
		map[string]any{"quantity": 1}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 updating registration, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/registrations/"+userID))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 cancelling registration, got %d", rec.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/events/"+eventID))
	var resp struct {
		ConfirmedCount int `json:"confirmed_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode event response: %v", err)
	}
	if resp.ConfirmedCount != 0 {
		t.Fatalf("expected confirmed count 0 after cancellation, got %d", resp.ConfirmedCount)
	}
}

func TestWaitlistEndpoints(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 1)
	publishViaAPI(t, router, eventID)

	registered := uuid.NewString()
	waiting := uuid.NewString()

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/registrations",
		map[string]any{"user_id": registered, "quantity": 1}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 registering, got %d", rec.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/waitlist",
		map[string]any{"user_id": waiting}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 joining waitlist, got %d: %s", rec.Code, rec.Body.String())
	}

	// Promotion must fail while the event is full.
	rec = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodPost, "/events/"+eventID+"/waitlist/"+waiting+"/promote"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 promoting into a full event, got %d", rec.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/registrations/"+registered))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 cancelling registration, got %d", rec.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodPost, "/events/"+eventID+"/waitlist/"+waiting+"/promote"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 promoting after a spot opened, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/events/"+eventID))
	var resp struct {
		WaitingList   []struct{ UserID string } `json:"waiting_list"`
		Registrations []struct {
			UserID string `json:"user_id"`
			Status string `json:"status"`
		} `json:"registrations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode event response: %v", err)
	}
	if len(resp.WaitingList) != 0 {
		t.Fatalf("expected empty waiting list after promotion, got %d entries", len(resp.WaitingList))
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 10)

	adminID := uuid.NewString()

	steps := []struct {
		name    string
		method  string
		path    string
		payload map[string]any
		want    int
	}{
		{"submit review", http.MethodPost, "/submit-review", nil, http.StatusNoContent},
		{"reject without reason", http.MethodPost, "/reject", map[string]any{"admin_id": adminID}, http.StatusBadRequest},
		{"approve", http.MethodPost, "/approve", map[string]any{"admin_id": adminID}, http.StatusNoContent},
		{"publish again conflicts", http.MethodPost, "/publish", nil, http.StatusConflict},
		{"postpone without reason", http.MethodPost, "/postpone", map[string]any{"reason": ""}, http.StatusBadRequest},
		{"postpone", http.MethodPost, "/postpone", map[string]any{"reason": "venue changed"}, http.StatusNoContent},
		{"cancel", http.MethodPost, "/cancel", map[string]any{"reason": "organizer request"}, http.StatusNoContent},
		{"archive", http.MethodPost, "/archive", nil, http.StatusNoContent},
		{"cancel archived conflicts", http.MethodPost, "/cancel", map[string]any{"reason": "again"}, http.StatusConflict},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			var req *http.Request
			if step.payload != nil {
				req = testutil.NewJSONRequest(t, step.method, "/events/"+eventID+step.path, step.payload)
			} else {
				req = testutil.NewRequest(t, step.method, "/events/"+eventID+step.path)
			}
			rec := testutil.DoRequest(router, req)
			if rec.Code != step.want {
				t.Fatalf("expected %d, got %d: %s", step.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCapacityEndpoint(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 5)
	publishViaAPI(t, router, eventID)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/registrations",
		map[string]any{"user_id": uuid.NewString(), "quantity": 4}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 registering, got %d", rec.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPut, "/events/"+eventID+"/capacity", map[string]any{"capacity": 3}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 shrinking below confirmed count, got %d", rec.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPut, "/events/"+eventID+"/capacity", map[string]any{"capacity": 50}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 growing capacity, got %d", rec.Code)
	}
}

func TestPassEndpoints(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 100)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/passes",
		map[string]any{
			"name":  "VIP",
			"price": map[string]any{"amount": 10000, "currency": "LKR"},
			"total": 20,
		}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 adding pass, got %d: %s", rec.Code, rec.Body.String())
	}
	created := testutil.UnmarshalResponse[CreatedResponse](t, rec)
	if created.ID == "" {
		t.Fatalf("expected pass id in response")
	}

	reserve := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/passes/"+created.ID+"/reserve",
		map[string]any{"quantity": 5}))
	if reserve.Code != http.StatusNoContent {
		t.Fatalf("expected 204 reserving pass units, got %d", reserve.Code)
	}

	remove := testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/passes/"+created.ID))
	if remove.Code != http.StatusConflict {
		t.Fatalf("expected 409 removing pass with reservations, got %d", remove.Code)
	}

	release := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/passes/"+created.ID+"/release",
		map[string]any{"quantity": 5}))
	if release.Code != http.StatusNoContent {
		t.Fatalf("expected 204 releasing pass units, got %d", release.Code)
	}

	remove = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/passes/"+created.ID))
	if remove.Code != http.StatusNoContent {
		t.Fatalf("expected 204 removing pass, got %d", remove.Code)
	}
}

func TestSignUpListEndpoints(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 40)
	userID := uuid.NewString()

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/signup-lists",
		map[string]any{
			"category":    "Food Items",
			"description": "potluck dishes",
			"items":       []string{"Rice", "Curry", "Dessert"},
		}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 adding sign-up list, got %d: %s", rec.Code, rec.Body.String())
	}
	created := testutil.UnmarshalResponse[CreatedResponse](t, rec)
	if created.ID == "" {
		t.Fatalf("expected sign-up list id in response")
	}

	dup := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/signup-lists",
		map[string]any{"category": "food items"}))
	if dup.Code != http.StatusConflict {
		t.Fatalf("expected 409 adding duplicate category, got %d", dup.Code)
	}
	testutil.AssertErrorCode(t, dup, "conflict")

	commit := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/signup-lists/"+created.ID+"/commitments",
		map[string]any{"user_id": userID, "item": "curry", "quantity": 2}))
	if commit.Code != http.StatusNoContent {
		t.Fatalf("expected 204 committing, got %d: %s", commit.Code, commit.Body.String())
	}

	offList := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/signup-lists/"+created.ID+"/commitments",
		map[string]any{"user_id": uuid.NewString(), "item": "Salad", "quantity": 1}))
	if offList.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 committing an off-list item, got %d", offList.Code)
	}
	testutil.AssertErrorCode(t, offList, "invalid_input")

	remove := testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/signup-lists/"+created.ID))
	if remove.Code != http.StatusConflict {
		t.Fatalf("expected 409 removing list with commitments, got %d", remove.Code)
	}

	cancel := testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/signup-lists/"+created.ID+"/commitments/"+userID))
	if cancel.Code != http.StatusNoContent {
		t.Fatalf("expected 204 cancelling commitment, got %d", cancel.Code)
	}

	rec = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/events/"+eventID))
	event := testutil.UnmarshalResponse[EventResponse](t, rec)
	if len(event.SignUpLists) != 1 || len(event.SignUpLists[0].Commitments) != 0 {
		t.Fatalf("expected one empty sign-up list, got %+v", event.SignUpLists)
	}

	remove = testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/signup-lists/"+created.ID))
	if remove.Code != http.StatusNoContent {
		t.Fatalf("expected 204 removing sign-up list, got %d", remove.Code)
	}
}

func TestBadgeEndpoints(t *testing.T) {
	router := newEventRouter(t)
	eventID := createEventViaAPI(t, router, 10)
	badgeID := uuid.NewString()

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/badges",
		map[string]any{"badge_id": badgeID, "duration_days": 30}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 assigning badge, got %d: %s", rec.Code, rec.Body.String())
	}

	dup := testutil.DoRequest(router, testutil.NewJSONRequest(t,
		http.MethodPost, "/events/"+eventID+"/badges",
		map[string]any{"badge_id": badgeID}))
	if dup.Code != http.StatusConflict {
		t.Fatalf("expected 409 assigning duplicate badge, got %d", dup.Code)
	}

	remove := testutil.DoRequest(router, testutil.NewRequest(t,
		http.MethodDelete, "/events/"+eventID+"/badges/"+badgeID))
	if remove.Code != http.StatusNoContent {
		t.Fatalf("expected 204 removing badge, got %d", remove.Code)
	}
}
