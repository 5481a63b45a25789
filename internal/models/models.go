package models

import "strconv"

// IPRecord represents the normalized result of a geo-IP lookup
// In Go, structs are used to define data structures
// String fields left empty mean the provider did not report them;
// Latitude/Longitude use pointers so "absent" and "0.0" stay distinct
type IPRecord struct {
	IP         string   // The IP address the provider resolved
	ISP        string   // Internet service provider name
	Country    string   // Country name
	Region     string   // Region or state name
	City       string   // City name
	PostalCode string   // Postal / ZIP code
	Latitude   *float64 // Latitude in decimal degrees, nil if unknown
	Longitude  *float64 // Longitude in decimal degrees, nil if unknown
}

// Field is one label/value line of the formatted reply
type Field struct {
	Label string
	Value string
}

// HasCoordinates reports whether both latitude and longitude are present
// Only then can a map be rendered for this record
func (r *IPRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Fields returns the record as an ordered list of label/value pairs,
// one per reply line. Every field is always listed; values the provider
// did not report render as "-" so the reply shape stays stable.
func (r *IPRecord) Fields() []Field {
	return []Field{
		{Label: "IP", Value: orDash(r.IP)},
		{Label: "ISP", Value: orDash(r.ISP)},
		{Label: "Country", Value: orDash(r.Country)},
		{Label: "Region", Value: orDash(r.Region)},
		{Label: "City", Value: orDash(r.City)},
		{Label: "Postal code", Value: orDash(r.PostalCode)},
		{Label: "Latitude", Value: floatOrDash(r.Latitude)},
		{Label: "Longitude", Value: floatOrDash(r.Longitude)},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func floatOrDash(f *float64) string {
	if f == nil {
		return "-"
	}
	// 'f' format with -1 precision keeps the shortest exact representation
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
