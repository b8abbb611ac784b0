package model

// Date and hour layouts used for every stored reading.
const (
	DateLayout = "02-01-2006"
	HourLayout = "15:04"
)

// Reading is one temperature/medicine/dose observation in a track.
// Name is only populated on the first row of a track.
type Reading struct {
	Name        string `json:"name"`
	Date        string `json:"date"`        // DD-MM-YYYY
	Hour        string `json:"hour"`        // HH:MM
	Temperature string `json:"temperature"` // decimal text, as typed
	Medicine    string `json:"medicine"`
	Dose        string `json:"dose"` // non-negative integer text
}
