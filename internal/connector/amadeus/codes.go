package amadeus

import "regexp"

// Three consecutive uppercase letters on word boundaries, e.g. "TIR-FCO".
var iataCodeRegex = regexp.MustCompile(`\b[A-Z]{3}\b`)

// ExtractAirportCodes pulls IATA-looking codes from free text in order of
// appearance. No validation against a real airport registry.
func ExtractAirportCodes(text string) []string {
	if text == "" {
		return nil
	}
	return iataCodeRegex.FindAllString(text, -1)
}
