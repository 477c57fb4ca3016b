package models

import (
	"fmt"
	"strings"
)

// Address is the postal sub-record of a Guest.
type Address struct {
	ID         *int64  `json:"id,omitempty"`
	Street     string  `json:"calle"`
	Number     string  `json:"numero"`
	Apartment  *string `json:"departamento,omitempty"`
	Floor      *string `json:"piso,omitempty"`
	PostalCode string  `json:"codigoPostal"`
	City       string  `json:"localidad"`
	Province   string  `json:"provincia"`
	Country    string  `json:"pais"`
}

// Guest is a person who can be registered, searched and attached to reservations.
// Email and CUIT, like the address apartment and floor, are optional: nil
// means "not provided".
type Guest struct {
	ID          *int64  `json:"id,omitempty"`
	FirstName   string  `json:"nombre"`
	LastName    string  `json:"apellido"`
	Document    string  `json:"nroDocumento"`
	Phone       string  `json:"telefono"`
	Email       *string `json:"email,omitempty"`
	CUIT        *string `json:"cuit,omitempty"`
	BirthDate   string  `json:"fechaDeNacimiento"`
	Nationality string  `json:"nacionalidad"`
	Occupation  string  `json:"ocupacion"`
	Address     Address `json:"direccion"`
}

// FullName returns "first last" for the guest.
func (g *Guest) FullName() string {
	if g == nil {
		return "-"
	}
	return FullName(g.FirstName, g.LastName)
}

// GuestCriterion selects the field a guest search matches on.
type GuestCriterion string

const (
	CriterionDocument GuestCriterion = "dni"
	CriterionName     GuestCriterion = "nombre"
	CriterionSurname  GuestCriterion = "apellido"
)

// ParseGuestCriterion accepts dni, nombre or apellido, case-insensitively.
func ParseGuestCriterion(s string) (GuestCriterion, error) {
	switch c := GuestCriterion(strings.ToLower(strings.TrimSpace(s))); c {
	case CriterionDocument, CriterionName, CriterionSurname:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown search criterion %q", ErrValidation, s)
	}
}

// GuestSearchRequest is the body of POST /pasajeros/buscar.
type GuestSearchRequest struct {
	Criterion GuestCriterion `json:"criterio"`
	Value     string         `json:"valor"`
}

// GuestSearchResponse is the wrapped form of a guest search result.
type GuestSearchResponse struct {
	Results []Guest `json:"resultados"`
}

// FullName joins trimmed first and last names, returning "-" when both are blank.
func FullName(first, last string) string {
	full := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if full == "" {
		return "-"
	}
	return full
}

// OptionalString maps blank form input to nil so "not provided" is never sent
// as an empty string.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences an optional string, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
