package services

import (
	"regexp"
	"strings"

	"corazones/internal/domain"
)

// Form field validation limits (mirroring the stored column sizes).
const (
	maxNameLen     = 200
	maxCedulaLen   = 20
	maxLocationLen = 100
	contactDigits  = 10
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
	emailRegexp   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// NormalizeCedula strips every non-digit character and uppercases the
// remainder. Idempotent: a digits-only input comes back unchanged.
func NormalizeCedula(s string) string {
	return strings.ToUpper(nonDigits.ReplaceAllString(s, ""))
}

// NormalizeFullName collapses internal whitespace runs to single spaces,
// trims, and uppercases.
func NormalizeFullName(s string) string {
	return strings.ToUpper(strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " ")))
}

func normalizeContactNumber(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidateRegistrationForm is a pure function mapping the raw public form to
// either a normalized Person or per-field error lists. It holds no state and
// writes nothing.
func ValidateRegistrationForm(form domain.RegistrationForm) (*domain.Person, *domain.ValidationError) {
	verr := domain.NewValidationError()

	fullName := NormalizeFullName(form.FullName)
	if fullName == "" {
		verr.Add("nombre_completo", "El nombre completo es obligatorio.")
	} else if len(fullName) > maxNameLen {
		verr.Add("nombre_completo", "El nombre completo es demasiado largo.")
	}

	cedula := NormalizeCedula(form.Cedula)
	if cedula == "" {
		verr.Add("cedula", "La cédula es obligatoria.")
	} else if len(cedula) > maxCedulaLen {
		verr.Add("cedula", "La cédula es demasiado larga.")
	}

	contact := normalizeContactNumber(form.ContactNumber)
	if contact == "" {
		verr.Add("numero_contacto", "El número de contacto es obligatorio.")
	} else if len(contact) != contactDigits {
		verr.Add("numero_contacto", "El número de contacto debe tener exactamente 10 dígitos.")
	}

	contact2 := ""
	if strings.TrimSpace(form.ContactNumber2) != "" {
		contact2 = normalizeContactNumber(form.ContactNumber2)
		if len(contact2) != contactDigits {
			verr.Add("numero_contacto_2", "El número de contacto adicional debe tener exactamente 10 dígitos.")
		}
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))
	if email == "" {
		verr.Add("email_contacto", "El correo electrónico es obligatorio.")
	} else if !emailRegexp.MatchString(email) {
		verr.Add("email_contacto", "Ingresa un correo electrónico válido.")
	}

	country := strings.ToUpper(strings.TrimSpace(form.Country))
	if country == "" {
		verr.Add("pais", "El país es obligatorio.")
	} else if len(country) > maxLocationLen {
		verr.Add("pais", "El país es demasiado largo.")
	}

	department := strings.ToUpper(strings.TrimSpace(form.Department))
	if department == "" {
		verr.Add("departamento", "El departamento es obligatorio.")
	} else if len(department) > maxLocationLen {
		verr.Add("departamento", "El departamento es demasiado largo.")
	}

	city := strings.ToUpper(strings.TrimSpace(form.City))
	if city == "" {
		verr.Add("ciudad", "La ciudad es obligatoria.")
	} else if len(city) > maxLocationLen {
		verr.Add("ciudad", "La ciudad es demasiado larga.")
	}

	if !form.TermsAccepted {
		verr.Add("terms_accepted", "Debes aceptar los términos y condiciones.")
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return &domain.Person{
		Cedula:         cedula,
		FullName:       fullName,
		ContactNumber:  contact,
		ContactNumber2: contact2,
		Email:          email,
		Country:        country,
		Department:     department,
		City:           city,
	}, nil
}
