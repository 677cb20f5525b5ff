package serving

import (
	"encoding/json"
	"net/http"
)

// CheckStatusResponse is the state of the tables server
type CheckStatusResponse struct {
	// Active is true when server is up
	Active bool `json:"active"`
	// Tables are the keys of the tables in memory, others load on first access
	Tables []string `json:"tables"`
	// DerivedNames is the number of derived standard names in the shared cache
	DerivedNames int `json:"derived_names"`
	// StrictUnits is true when unparseable units reject a table instead of a warning
	StrictUnits bool `json:"strict_units"`
}

// checkStatusHandler returns the tables in use and the derived names cache size
func checkStatusHandler(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	result := CheckStatusResponse{
		Active:       true,
		Tables:       wrapper.Tables.Loaded(),
		DerivedNames: wrapper.Tables.CacheSize(),
		StrictUnits:  wrapper.Tables.StrictUnits(),
	}

	json.NewEncoder(w).Encode(result)
	return nil
}
