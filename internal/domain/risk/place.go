package risk

import "strings"

// SplitPlaceLabel splits a "City, State" place label on the first comma.
// The state part is empty when the label has no comma.
func SplitPlaceLabel(label string) (city, state string) {
	city, state, found := strings.Cut(label, ",")
	city = strings.TrimSpace(city)
	if !found {
		return city, ""
	}
	return city, strings.TrimSpace(state)
}
