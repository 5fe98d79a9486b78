package app

import (
	"fmt"
	"strings"

	"hotel_recommender/internal/domain"
)

// cityCodes maps lowercase human city names to provider city codes. Several
// names alias the same metro area (gurgaon→DEL, thane→BOM, cochin/kochi→COK).
var cityCodes = map[string]string{
	"agra":          "AGR",
	"ahmedabad":     "AMD",
	"ajmer":         "AII",
	"allahabad":     "IXD",
	"amritsar":      "ATQ",
	"aurangabad":    "IXU",
	"bengaluru":     "BLR",
	"bangalore":     "BLR",
	"bhopal":        "BHO",
	"bhubaneswar":   "BBI",
	"chandigarh":    "IXC",
	"chennai":       "MAA",
	"cochin":        "COK",
	"coimbatore":    "CJB",
	"delhi":         "DEL",
	"goa":           "GOA",
	"gurgaon":       "DEL",
	"gwalior":       "GWL",
	"hyderabad":     "HYD",
	"imphal":        "IMF",
	"indore":        "IDR",
	"jaipur":        "JAI",
	"jammu":         "JAM",
	"jodhpur":       "JDH",
	"kanpur":        "KNP",
	"kochi":         "COK",
	"kolkata":       "CCU",
	"lucknow":       "LKO",
	"ludhiana":      "LUH",
	"madurai":       "MDU",
	"mangalore":     "IXE",
	"mumbai":        "BOM",
	"nagpur":        "NAG",
	"nashik":        "ISK",
	"pune":          "PNQ",
	"ranchi":        "RAN",
	"shivamogga":    "SMG",
	"surat":         "STV",
	"thane":         "BOM",
	"trenall":       "TRZ",
	"tirupati":      "TIR",
	"trivandrum":    "TRV",
	"udupi":         "UDU",
	"varanasi":      "VNS",
	"vadodara":      "BDQ",
	"vijayawada":    "VJA",
	"visakhapatnam": "VTZ",
}

// ResolveCity maps a human city name to its provider code. Matching is
// case-insensitive and whitespace-trimmed; no fuzzy matching.
func ResolveCity(name string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return "", domain.NewError(domain.KindUnsupportedCity, "missing 'city' parameter")
	}
	code, ok := cityCodes[q]
	if !ok {
		return "", domain.NewError(domain.KindUnsupportedCity, fmt.Sprintf("unsupported city %q", name))
	}
	return code, nil
}
