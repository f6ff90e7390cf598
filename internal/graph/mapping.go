package graph

import "primefire/internal/model"

// EmployeeFields is the flattened set of directory values sync writes onto a
// local employee. Country carries the free-text value; resolving it to a
// country row happens in the sync service.
type EmployeeFields struct {
	AzureOID      string
	AzureUPN      string
	FirstName     string
	LastName      string
	DisplayName   string
	Title         string
	Department    string
	Office        string
	Email         string
	MobilePhone   string
	OfficePhone   string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
}

// MapUserToEmployeeFields flattens a directory user into local employee
// fields.
func MapUserToEmployeeFields(u User) EmployeeFields {
	officePhone := ""
	if len(u.BusinessPhones) > 0 {
		officePhone = u.BusinessPhones[0]
	}

	email := u.Mail
	if email == "" {
		email = u.UserPrincipalName
	}

	country := u.CountryLetterCode
	if country == "" {
		country = u.Country
	}

	return EmployeeFields{
		AzureOID:      u.ID,
		AzureUPN:      u.UserPrincipalName,
		FirstName:     u.GivenName,
		LastName:      u.Surname,
		DisplayName:   u.DisplayName,
		Title:         u.JobTitle,
		Department:    u.Department,
		Office:        u.OfficeLocation,
		Email:         email,
		MobilePhone:   u.MobilePhone,
		OfficePhone:   officePhone,
		StreetAddress: u.StreetAddress,
		City:          u.City,
		State:         u.State,
		PostalCode:    u.PostalCode,
		Country:       country,
	}
}

// MapEmployeeToUserFields builds the PATCH body pushing a local employee back
// to the directory. Only non-empty fields are sent; mail stays read-only.
func MapEmployeeToUserFields(e *model.Employee) map[string]interface{} {
	fields := make(map[string]interface{})

	if e.FirstName != "" {
		fields["givenName"] = e.FirstName
	}
	if e.LastName != "" {
		fields["surname"] = e.LastName
	}
	if e.DisplayName != "" {
		fields["displayName"] = e.DisplayName
	}
	if e.Title != "" {
		fields["jobTitle"] = e.Title
	}
	if e.Department != "" {
		fields["department"] = e.Department
	}
	if e.Office != "" {
		fields["officeLocation"] = e.Office
	}
	if e.MobilePhone != "" {
		fields["mobilePhone"] = e.MobilePhone
	}
	if e.OfficePhone != "" {
		fields["businessPhones"] = []string{e.OfficePhone}
	}
	if e.StreetAddress != "" {
		fields["streetAddress"] = e.StreetAddress
	}
	if e.City != "" {
		fields["city"] = e.City
	}
	if e.State != "" {
		fields["state"] = e.State
	}
	if e.PostalCode != "" {
		fields["postalCode"] = e.PostalCode
	}
	if e.Country != nil && e.Country.Name != "" {
		fields["country"] = e.Country.Name
	}

	return fields
}
