package holidayapi

// PublicHoliday модель праздника из Nager.Date API
type PublicHoliday struct {
	Date        string `json:"date"` // YYYY-MM-DD
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}
