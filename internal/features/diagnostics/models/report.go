package models

// Status strings reported by the /test endpoint
const (
	BackendRunning = "✅ Running"

	DatabaseNotAvailable = "❌ Not Available"
	DatabaseAvailable    = "✅ Available"
	DatabaseWorking      = "✅ Connected & Working"

	ConnectionNotConnected = "Not Connected"
	ConnectionConnected    = "Connected"

	EnvSet    = "✅ Set"
	EnvNotSet = "❌ Not Set"

	databaseErrorPrefix  = "❌ Error: "
	listingErrorPrefix   = "⚠️  Connected but Error: "
	maxErrorMessageRunes = 50
)

// Report is the /test response body
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// NewReport returns the report for a backend with no usable database
func NewReport(urlSet, nameSet bool) *Report {
	return &Report{
		Backend:          BackendRunning,
		Database:         DatabaseNotAvailable,
		DatabaseURL:      envStatus(urlSet),
		DatabaseName:     envStatus(nameSet),
		ConnectionStatus: ConnectionNotConnected,
		Collections:      []string{},
	}
}

// DatabaseError formats a failure to open or reach the database
func DatabaseError(err error) string {
	return databaseErrorPrefix + truncate(err.Error())
}

// ListingError formats a failure to list tables on a reachable database
func ListingError(err error) string {
	return listingErrorPrefix + truncate(err.Error())
}

func envStatus(set bool) string {
	if set {
		return EnvSet
	}
	return EnvNotSet
}

func truncate(message string) string {
	runes := []rune(message)
	if len(runes) > maxErrorMessageRunes {
		return string(runes[:maxErrorMessageRunes])
	}
	return message
}
