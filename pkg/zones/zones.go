package zones

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// Zone maps a zone name to the keyword phrases that identify it.
type Zone struct {
	Name    string   `json:"zone"`
	Phrases []string `json:"phrases"`
}

//go:embed zones.json
var zonesJSON []byte

// taxonomy keeps definition order: classification picks the first
// matching zone, so iteration order is part of the contract.
var taxonomy []Zone

func init() {
	if err := json.Unmarshal(zonesJSON, &taxonomy); err != nil {
		panic(fmt.Errorf("failed to load zone taxonomy: %w", err))
	}
}

// Names returns all zone names in definition order.
func Names() []string {
	names := make([]string, 0, len(taxonomy))
	for _, z := range taxonomy {
		names = append(names, z.Name)
	}
	return names
}

// PhrasesFor returns the phrase list for a zone, or nil if the zone
// is not part of the taxonomy.
func PhrasesFor(name string) []string {
	for _, z := range taxonomy {
		if z.Name == name {
			return z.Phrases
		}
	}
	return nil
}

// Classify matches an article against the taxonomy and returns the
// first zone whose phrase list contains a substring of the lowercased
// title+description. Ties are not scored: earlier zones win.
func Classify(title, description string) (string, bool) {
	text := strings.ToLower(title + " " + description)

	for _, z := range taxonomy {
		for _, phrase := range z.Phrases {
			if strings.Contains(text, phrase) {
				return z.Name, true
			}
		}
	}

	return "", false
}
