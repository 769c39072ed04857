package checker

// Event reports progress for a single probed URL.
type Event struct {
	URL     string
	Status  string
	OK      bool
	Checked int
	Broken  int
	Total   int
}
