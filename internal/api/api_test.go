package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fenwick/hearth/internal/household"
	"github.com/fenwick/hearth/internal/testutil"
)

// testEnv sets up a temp SQLite DB, household service, and router for testing.
func testEnv(t *testing.T, family []household.FamilyMember) (*household.Service, http.Handler) {
	t.Helper()
	svc := household.NewService(testutil.TestDB(t), family)
	return svc, NewRouter(svc)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) int64 {
	t.Helper()
	var resp IDResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode id: %v (body %s)", err, w.Body.String())
	}
	return resp.ID
}

func TestCreateAndGetPerson(t *testing.T) {
	_, router := testEnv(t, nil)

	w := doJSON(t, router, http.MethodPost, "/people", map[string]string{
		"first_name": "Alice", "last_name": "Smith",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	if decodeID(t, w) == 0 {
		t.Error("expected non-zero id")
	}

	w = doJSON(t, router, http.MethodGet, "/people/Alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var p PersonDetail
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.FirstName != "Alice" || p.LastName != "Smith" {
		t.Errorf("person = %+v", p)
	}
	if len(p.Children) != 0 || len(p.StarCharts) != 0 {
		t.Errorf("fresh person should be empty: %+v", p)
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	_, router := testEnv(t, nil)
	w := doJSON(t, router, http.MethodGet, "/people/Nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCreatePerson_BadBody(t *testing.T) {
	_, router := testEnv(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/people", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/people", map[string]string{"last_name": "Smith"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing first_name status = %d, want 400", w.Code)
	}
}

func TestListPeopleNames(t *testing.T) {
	_, router := testEnv(t, nil)
	_ = doJSON(t, router, http.MethodPost, "/people", map[string]string{"first_name": "Alice", "last_name": "Smith"})
	_ = doJSON(t, router, http.MethodPost, "/people", map[string]string{"first_name": "Bob", "last_name": "Jones"})

	w := doJSON(t, router, http.MethodGet, "/people", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var names []string
	_ = json.Unmarshal(w.Body.Bytes(), &names)
	if len(names) != 2 || names[0] != "Alice Smith" || names[1] != "Bob Jones" {
		t.Errorf("names = %v", names)
	}
}

func TestAdminPeopleListAndDelete(t *testing.T) {
	_, router := testEnv(t, nil)
	w := doJSON(t, router, http.MethodPost, "/people", map[string]string{"first_name": "Alice"})
	id := decodeID(t, w)

	w = doJSON(t, router, http.MethodGet, "/admin/people", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var people []PersonListItem
	_ = json.Unmarshal(w.Body.Bytes(), &people)
	if len(people) != 1 || people[0].ID != id || people[0].FirstName != "Alice" {
		t.Errorf("people = %+v", people)
	}

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/people/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/people/Alice", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", w.Code)
	}
}

func TestStarChartLifecycle(t *testing.T) {
	_, router := testEnv(t, nil)
	w := doJSON(t, router, http.MethodPost, "/people", map[string]string{"first_name": "Bob"})
	personID := decodeID(t, w)

	// Create: {name:"chores", star_count:3, star_total:10}.
	w = doJSON(t, router, http.MethodPost, "/stars", map[string]any{
		"name": "chores", "description": "daily chores",
		"person_id": personID, "star_count": 3, "star_total": 10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	chartID := decodeID(t, w)
	chartPath := fmt.Sprintf("/stars/%d", chartID)

	// Read back.
	w = doJSON(t, router, http.MethodGet, chartPath, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var chart StarChartView
	_ = json.Unmarshal(w.Body.Bytes(), &chart)
	if chart.Name != "chores" || chart.StarCount != 3 || chart.StarTotal != 10 {
		t.Errorf("chart = %+v", chart)
	}
	if chart.PersonFirstName != "Bob" {
		t.Errorf("owner = %q", chart.PersonFirstName)
	}

	// Patch without counts leaves them unchanged.
	w = doJSON(t, router, http.MethodPatch, chartPath, map[string]any{
		"name": "tidying", "description": "updated",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, chartPath, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &chart)
	if chart.Name != "tidying" || chart.StarCount != 3 || chart.StarTotal != 10 {
		t.Errorf("after patch chart = %+v", chart)
	}

	// Increment by 2: 3 -> 5.
	w = doJSON(t, router, http.MethodPost, chartPath+"/increment", map[string]int{"delta": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("increment status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, chartPath, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &chart)
	if chart.StarCount != 5 {
		t.Errorf("count = %d, want 5", chart.StarCount)
	}

	// Delete twice: idempotent, both 200.
	adminPath := fmt.Sprintf("/admin/stars/%d", chartID)
	w = doJSON(t, router, http.MethodDelete, adminPath, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first delete status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, adminPath, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second delete status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, chartPath, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", w.Code)
	}
}

func TestCreateStarChart_PersonMissing(t *testing.T) {
	_, router := testEnv(t, nil)
	w := doJSON(t, router, http.MethodPost, "/stars", map[string]any{
		"name": "chores", "person_id": 42, "star_total": 10,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPatchAndIncrement_NotFound(t *testing.T) {
	_, router := testEnv(t, nil)

	w := doJSON(t, router, http.MethodPatch, "/stars/9", map[string]any{"name": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("patch status = %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/stars/9/increment", map[string]int{"delta": 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("increment status = %d, want 404", w.Code)
	}
}

func TestInitializeEndpoint(t *testing.T) {
	family := []household.FamilyMember{
		{FirstName: "Alice", LastName: "Smith", Children: []string{"Bob"}},
		{FirstName: "Bob", LastName: "Smith"},
	}
	_, router := testEnv(t, family)

	w := doJSON(t, router, http.MethodPost, "/initialize", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("initialize status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/people/Alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var p PersonDetail
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if len(p.Children) != 1 || p.Children[0].FirstName != "Bob" {
		t.Errorf("children = %+v", p.Children)
	}
}

func TestCalendarRoutes(t *testing.T) {
	_, router := testEnv(t, nil)
	w := doJSON(t, router, http.MethodPost, "/people", map[string]string{"first_name": "Alice"})
	personID := decodeID(t, w)

	w = doJSON(t, router, http.MethodPost, "/calendar/events", map[string]any{
		"title": "Dentist", "person_id": personID,
		"start": "2026-09-01T09:00", "end": "2026-09-01T10:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create event status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/calendar/events", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list events status = %d", w.Code)
	}
	var events []household.CalendarEventView
	_ = json.Unmarshal(w.Body.Bytes(), &events)
	if len(events) != 1 || events[0].ResourceID != personID || events[0].Title != "Dentist" {
		t.Errorf("events = %+v", events)
	}

	w = doJSON(t, router, http.MethodGet, "/calendar/people", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list calendar people status = %d", w.Code)
	}
	var resources []household.CalendarPersonView
	_ = json.Unmarshal(w.Body.Bytes(), &resources)
	if len(resources) != 1 || resources[0].EventBackgroundColor == "" {
		t.Errorf("resources = %+v", resources)
	}
}

func TestEmptyListsSerializeAsArrays(t *testing.T) {
	_, router := testEnv(t, nil)

	for _, path := range []string{"/people", "/admin/people", "/stars", "/calendar/events", "/calendar/people"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, w.Code)
		}
		body := bytes.TrimSpace(w.Body.Bytes())
		if len(body) == 0 || body[0] != '[' {
			t.Errorf("%s body = %s, want JSON array", path, body)
		}
	}
}
