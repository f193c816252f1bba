package household

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fenwick/hearth/internal/apperr"
	"github.com/fenwick/hearth/internal/store"
	"github.com/fenwick/hearth/internal/testutil"
)

func testService(t *testing.T, family []FamilyMember) (*Service, *store.DB) {
	t.Helper()
	db := testutil.TestDB(t)
	return NewService(db, family), db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCreateThenGetPerson(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()

	if _, err := svc.CreatePerson(ctx, "Alice", "Smith"); err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}

	p, err := svc.GetPerson(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if p.FirstName != "Alice" || p.LastName != "Smith" {
		t.Errorf("person = %+v", p)
	}
	if len(p.Children) != 0 || len(p.StarCharts) != 0 {
		t.Errorf("fresh person should have empty children and charts: %+v", p)
	}
	if p.Children == nil || p.StarCharts == nil {
		t.Error("children and star_charts must serialize as arrays, not null")
	}
}

func TestGetPerson_NestedOneLevel(t *testing.T) {
	svc, db := testService(t, nil)
	ctx := context.Background()

	alice, _ := db.CreatePerson("Alice", "Smith")
	bob, _ := db.CreatePerson("Bob", "Smith")
	carol, _ := db.CreatePerson("Carol", "Smith")
	_ = db.AddParentChild(alice, bob)
	_ = db.AddParentChild(bob, carol)
	_, _ = db.CreateStarChart(alice, "budget", "", 1, 5)
	_, _ = db.CreateStarChart(bob, "chores", "", 2, 10)

	p, err := svc.GetPerson(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if len(p.Children) != 1 || p.Children[0].FirstName != "Bob" {
		t.Fatalf("children = %+v", p.Children)
	}

	// The child carries their own charts, but not their own children.
	kid := p.Children[0]
	if len(kid.StarCharts) != 1 || kid.StarCharts[0].Name != "chores" {
		t.Errorf("child charts = %+v", kid.StarCharts)
	}
	if len(kid.Children) != 0 {
		t.Errorf("grandchildren must not be populated: %+v", kid.Children)
	}

	if len(p.StarCharts) != 1 || p.StarCharts[0].Name != "budget" {
		t.Errorf("own charts = %+v", p.StarCharts)
	}
	if p.StarCharts[0].PersonFirstName != "Alice" {
		t.Errorf("owner annotation = %+v", p.StarCharts[0])
	}
}

func TestListPeopleNames(t *testing.T) {
	svc, db := testService(t, nil)
	ctx := context.Background()
	_, _ = db.CreatePerson("Alice", "Smith")
	_, _ = db.CreatePerson("Bob", "Jones")

	names, err := svc.ListPeopleNames(ctx)
	if err != nil {
		t.Fatalf("ListPeopleNames: %v", err)
	}
	want := []string{"Alice Smith", "Bob Jones"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestStarChartView_OwnerAnnotation(t *testing.T) {
	svc, db := testService(t, nil)
	ctx := context.Background()

	bob, _ := db.CreatePerson("Bob", "Smith")
	id, _ := db.CreateStarChart(bob, "chores", "", 0, 10)

	v, err := svc.GetStarChart(ctx, id)
	if err != nil {
		t.Fatalf("GetStarChart: %v", err)
	}
	if v.PersonFirstName != "Bob" || v.PersonLastName != "Smith" {
		t.Errorf("owner = %q %q", v.PersonFirstName, v.PersonLastName)
	}
}

// danglingStore serves a chart whose owner row no longer exists.
type danglingStore struct {
	store.Store
}

func (danglingStore) GetStarChart(id int64) (*store.StarChartRow, error) {
	return &store.StarChartRow{ID: id, PersonID: 99, Name: "orphaned"}, nil
}

func (danglingStore) GetPersonByID(int64) (*store.PersonRow, error) {
	return nil, apperr.ErrNotFound
}

func TestStarChartView_DanglingOwnerTolerated(t *testing.T) {
	svc := NewService(danglingStore{}, nil)

	v, err := svc.GetStarChart(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStarChart: %v", err)
	}
	if v.PersonFirstName != "" || v.PersonLastName != "" {
		t.Errorf("dangling owner should yield empty names: %+v", v)
	}
}

func TestInitialize_SeedsPeopleAndLinks(t *testing.T) {
	family := []FamilyMember{
		{FirstName: "Alice", LastName: "Smith", Age: 38, Children: []string{"Bob"}},
		{FirstName: "Bob", LastName: "Smith", Age: 9},
	}
	svc, _ := testService(t, family)
	ctx := context.Background()

	ok, _ := svc.IsInitialized(ctx)
	if ok {
		t.Fatal("fresh db should not be initialized")
	}

	if err := svc.Initialize(ctx, discardLogger()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	ok, _ = svc.IsInitialized(ctx)
	if !ok {
		t.Fatal("db should be initialized after seeding")
	}

	alice, err := svc.GetPerson(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if len(alice.Children) != 1 || alice.Children[0].FirstName != "Bob" {
		t.Errorf("children = %+v", alice.Children)
	}
}

func TestInitialize_SkipsUnresolvableNames(t *testing.T) {
	family := []FamilyMember{
		{FirstName: "Alice", LastName: "Smith", Children: []string{"Ghost", "Bob"}},
		{FirstName: "Bob", LastName: "Smith"},
	}
	svc, _ := testService(t, family)
	ctx := context.Background()

	if err := svc.Initialize(ctx, discardLogger()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	alice, _ := svc.GetPerson(ctx, "Alice")
	if len(alice.Children) != 1 || alice.Children[0].FirstName != "Bob" {
		t.Errorf("children = %+v, want only Bob", alice.Children)
	}
}

// brokenLookupStore fails every first-name lookup with a storage error.
type brokenLookupStore struct {
	store.Store
}

func (brokenLookupStore) GetPersonByFirstName(string) (*store.PersonRow, error) {
	return nil, errors.New("disk I/O error")
}

func TestInitialize_StorageErrorNotSwallowed(t *testing.T) {
	family := []FamilyMember{
		{FirstName: "Alice", LastName: "Smith", Children: []string{"Bob"}},
		{FirstName: "Bob", LastName: "Smith"},
	}
	db := testutil.TestDB(t)
	svc := NewService(brokenLookupStore{Store: db}, family)

	// A lookup failure that is not ErrNotFound must abort the seed, not be
	// treated as an unresolvable name.
	if err := svc.Initialize(context.Background(), discardLogger()); err == nil {
		t.Fatal("Initialize should propagate the storage error")
	}
}

func TestInitialize_RerunDoesNotDuplicateLinks(t *testing.T) {
	family := []FamilyMember{
		{FirstName: "Alice", LastName: "Smith", Children: []string{"Bob"}},
		{FirstName: "Bob", LastName: "Smith"},
	}
	svc, db := testService(t, family)
	ctx := context.Background()

	if err := svc.Initialize(ctx, discardLogger()); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	// A second run inserts people again (first-name lookups keep resolving to
	// the originals) but must not fail on the existing link.
	if err := svc.Initialize(ctx, discardLogger()); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}

	alice, _ := db.GetPersonByFirstName("Alice")
	kids, _ := db.ChildrenOf(alice.ID)
	if len(kids) != 1 {
		t.Errorf("children = %+v, want exactly one link", kids)
	}
}

func TestSetFamilySwapsSeedList(t *testing.T) {
	svc, _ := testService(t, []FamilyMember{{FirstName: "Alice"}})
	svc.SetFamily([]FamilyMember{{FirstName: "Zoe"}, {FirstName: "Yan"}})

	family := svc.Family()
	if len(family) != 2 || family[0].FirstName != "Zoe" {
		t.Errorf("family = %+v", family)
	}
}

func TestCalendarPeopleColors(t *testing.T) {
	svc, db := testService(t, nil)
	ctx := context.Background()
	a, _ := db.CreatePerson("Alice", "Smith")
	b, _ := db.CreatePerson("Bob", "Smith")

	people, err := svc.ListCalendarPeople(ctx)
	if err != nil {
		t.Fatalf("ListCalendarPeople: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("len = %d, want 2", len(people))
	}
	wantA := calendarPalette[a%int64(len(calendarPalette))]
	wantB := calendarPalette[b%int64(len(calendarPalette))]
	if people[0].EventBackgroundColor != wantA || people[1].EventBackgroundColor != wantB {
		t.Errorf("colors = %+v", people)
	}
	if people[0].Title != "Alice Smith" {
		t.Errorf("title = %q", people[0].Title)
	}
}

func TestCalendarEvents_ResourceAlias(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()

	id, err := svc.CreateCalendarEvent(ctx, "Dentist", 7, "2026-09-01T09:00", "2026-09-01T10:00")
	if err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}

	events, err := svc.ListCalendarEvents(ctx)
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != id {
		t.Fatalf("events = %+v", events)
	}
	if events[0].ResourceID != 7 {
		t.Errorf("resourceId = %d, want 7", events[0].ResourceID)
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	svc, _ := testService(t, nil)
	if _, err := svc.GetPerson(context.Background(), "Nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
