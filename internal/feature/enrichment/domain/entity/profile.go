package entity

// SecurityProfile is the raw classification data returned by the external
// profile API before sector and region normalization.
type SecurityProfile struct {
	Symbol   string
	Name     string
	Sector   string
	Industry string
	Country  string
	Exchange string
	Currency string
}
