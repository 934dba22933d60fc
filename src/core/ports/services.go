package ports

// ConfigStatus describes the completeness of the database environment.
type ConfigStatus struct {
	OK      bool
	Missing []string
	// Visible holds values of non-secret variables only.
	Visible map[string]string
}

// ConfigInspector reports on required database variables without exposing secrets.
type ConfigInspector interface {
	Missing() []string
	Status() ConfigStatus
}
