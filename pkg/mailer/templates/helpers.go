package templates

// Brand holds the product fields every template can show.
type Brand struct {
	AppName        string
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	AppURL         string
}

// NewBaseEmailData fills the common fields from the brand.
func NewBaseEmailData(b Brand, name, email string) EmailData {
	return EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,

		AppName:        b.AppName,
		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		LogoURL:        b.LogoURL,
		SupportURL:     b.SupportURL,
		AppURL:         b.AppURL,
	}
}

// BrandDefaults is merged into queued jobs that only carry the recipient fields.
func BrandDefaults(b Brand) map[string]any {
	m := ToMap(NewBaseEmailData(b, "", ""))
	for _, k := range []string{"Name", "Email", "RecipientEmail"} {
		delete(m, k)
	}
	return m
}
