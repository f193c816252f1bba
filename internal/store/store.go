package store

// Store defines the interface for household data operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type Store interface {
	CreatePerson(firstName, lastName string) (int64, error)
	GetPersonByFirstName(firstName string) (*PersonRow, error)
	GetPersonByID(id int64) (*PersonRow, error)
	ListPeople() ([]PersonRow, error)
	DeletePerson(id int64) error

	ChildrenOf(parentID int64) ([]PersonRow, error)
	ParentsOf(childID int64) ([]PersonRow, error)
	AddParentChild(parentID, childID int64) error
	HasParentChild(parentID, childID int64) (bool, error)

	CreateStarChart(personID int64, name, description string, starCount, starTotal int) (int64, error)
	GetStarChart(id int64) (*StarChartRow, error)
	ListStarCharts() ([]StarChartRow, error)
	ListStarChartsForPerson(personID int64) ([]StarChartRow, error)
	UpdateStarChart(id int64, name, description string, starCount, starTotal *int) error
	IncrementStarChart(id int64, delta int) error
	DeleteStarChart(id int64) error

	CreateCalendarEvent(personID int64, title, start, end string) (int64, error)
	ListCalendarEvents() ([]CalendarEventRow, error)

	IsInitialized() (bool, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
