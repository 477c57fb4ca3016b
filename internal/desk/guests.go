package desk

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/go-playground/validator/v10"
)

// GuestForm holds the fields typed on the guest pages. Email, CUIT,
// apartment and floor are optional; every other field is required.
type GuestForm struct {
	FirstName   string `json:"nombre" validate:"required"`
	LastName    string `json:"apellido" validate:"required"`
	Document    string `json:"nroDocumento" validate:"required"`
	Phone       string `json:"telefono" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	CUIT        string `json:"cuit"`
	BirthDate   string `json:"fechaDeNacimiento" validate:"required"`
	Nationality string `json:"nacionalidad" validate:"required"`
	Occupation  string `json:"ocupacion" validate:"required"`
	Street      string `json:"calle" validate:"required"`
	Number      string `json:"numero" validate:"required"`
	Apartment   string `json:"departamento"`
	Floor       string `json:"piso"`
	PostalCode  string `json:"codigoPostal" validate:"required"`
	City        string `json:"localidad" validate:"required"`
	Province    string `json:"provincia" validate:"required"`
	Country     string `json:"pais" validate:"required"`
}

var formValidator = newFormValidator()

// newFormValidator reports fields by their wire names.
func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (f GuestForm) trimmed() GuestForm {
	v := reflect.ValueOf(&f).Elem()
	for i := 0; i < v.NumField(); i++ {
		if field := v.Field(i); field.Kind() == reflect.String {
			field.SetString(strings.TrimSpace(field.String()))
		}
	}
	return f
}

// Validate reports the required fields left blank and malformed values.
func (f GuestForm) Validate() error {
	err := formValidator.Struct(f.trimmed())
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			} else {
				invalid = append(invalid, fe.Field())
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", models.ErrValidation, strings.Join(missing, ", "))
		}
		return fmt.Errorf("%w: invalid %s", models.ErrValidation, strings.Join(invalid, ", "))
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if birth := models.ParseDate(f.BirthDate); !birth.Valid {
		return fmt.Errorf("%w: fechaDeNacimiento must be YYYY-MM-DD", models.ErrValidation)
	}
	return nil
}

// Guest converts the form into a guest record. Blank optional fields become nil.
func (f GuestForm) Guest() models.Guest {
	return models.Guest{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Document:    strings.TrimSpace(f.Document),
		Phone:       strings.TrimSpace(f.Phone),
		Email:       models.OptionalString(f.Email),
		CUIT:        models.OptionalString(f.CUIT),
		BirthDate:   strings.TrimSpace(f.BirthDate),
		Nationality: strings.TrimSpace(f.Nationality),
		Occupation:  strings.TrimSpace(f.Occupation),
		Address: models.Address{
			Street:     strings.TrimSpace(f.Street),
			Number:     strings.TrimSpace(f.Number),
			Apartment:  models.OptionalString(f.Apartment),
			Floor:      models.OptionalString(f.Floor),
			PostalCode: strings.TrimSpace(f.PostalCode),
			City:       strings.TrimSpace(f.City),
			Province:   strings.TrimSpace(f.Province),
			Country:    strings.TrimSpace(f.Country),
		},
	}
}

// FormFromGuest fills a form from a stored guest.
func FormFromGuest(g models.Guest) GuestForm {
	return GuestForm{
		FirstName:   g.FirstName,
		LastName:    g.LastName,
		Document:    g.Document,
		Phone:       g.Phone,
		Email:       models.StringValue(g.Email),
		CUIT:        models.StringValue(g.CUIT),
		BirthDate:   birthDate(g.BirthDate),
		Nationality: g.Nationality,
		Occupation:  g.Occupation,
		Street:      g.Address.Street,
		Number:      g.Address.Number,
		Apartment:   models.StringValue(g.Address.Apartment),
		Floor:       models.StringValue(g.Address.Floor),
		PostalCode:  g.Address.PostalCode,
		City:        g.Address.City,
		Province:    g.Address.Province,
		Country:     g.Address.Country,
	}
}

func birthDate(raw string) string {
	if d := models.ParseDate(raw); d.Valid {
		return models.FormatDate(d)
	}
	return raw
}

// Merge overlays the non-blank fields of edits onto f.
func (f GuestForm) Merge(edits GuestForm) GuestForm {
	pairs := []struct {
		dst *string
		src string
	}{
		{&f.FirstName, edits.FirstName},
		{&f.LastName, edits.LastName},
		{&f.Document, edits.Document},
		{&f.Phone, edits.Phone},
		{&f.Email, edits.Email},
		{&f.CUIT, edits.CUIT},
		{&f.BirthDate, edits.BirthDate},
		{&f.Nationality, edits.Nationality},
		{&f.Occupation, edits.Occupation},
		{&f.Street, edits.Street},
		{&f.Number, edits.Number},
		{&f.Apartment, edits.Apartment},
		{&f.Floor, edits.Floor},
		{&f.PostalCode, edits.PostalCode},
		{&f.City, edits.City},
		{&f.Province, edits.Province},
		{&f.Country, edits.Country},
	}
	for _, p := range pairs {
		if strings.TrimSpace(p.src) != "" {
			*p.dst = p.src
		}
	}
	return f
}

// GuestPage registers new guests and modifies or removes one looked up by
// document.
type GuestPage struct {
	Loaded *models.Guest `json:"loaded,omitempty"`
	Error  string        `json:"error,omitempty"`
	Busy   bool          `json:"busy"`

	mu   sync.Mutex
	desk *Desk
}

func (p *GuestPage) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Busy {
		return ErrBusy
	}
	p.Busy = true
	p.Error = ""
	return nil
}

func (p *GuestPage) finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Busy = false
	if err != nil {
		p.Error = Describe(err)
	}
}

func (p *GuestPage) loaded() (*models.Guest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Loaded == nil {
		return nil, fmt.Errorf("%w: no guest loaded", models.ErrValidation)
	}
	if p.Loaded.ID == nil {
		return nil, fmt.Errorf("%w: loaded guest has no id", models.ErrValidation)
	}
	g := *p.Loaded
	return &g, nil
}

// Lookup loads the first guest matching a document number.
func (p *GuestPage) Lookup(ctx context.Context, document string) (guest *models.Guest, err error) {
	log := p.desk.log()
	document = strings.TrimSpace(document)
	if document == "" {
		return nil, fmt.Errorf("%w: document is required", models.ErrValidation)
	}
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer func() { p.finish(err) }()

	log.Info("Looking up guest", logger.Action("guest_lookup"), logger.Guest(document))
	found, err := p.desk.Guests.SearchGuests(ctx, models.CriterionDocument, document)
	if err != nil {
		log.Error("Guest lookup failed", logger.Action("guest_lookup"), logger.Guest(document), logger.Error(err))
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}
	if len(found) == 0 {
		p.mu.Lock()
		p.Loaded = nil
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: no guest with document %s", models.ErrNotFound, document)
	}

	first := found[0]
	p.mu.Lock()
	p.Loaded = &first
	p.mu.Unlock()
	log.Info("Guest loaded", logger.Action("guest_lookup"), logger.Guest(document), logger.Count(len(found)))
	return &first, nil
}

// Register creates a new guest from the form.
func (p *GuestPage) Register(ctx context.Context, form GuestForm) (guest *models.Guest, err error) {
	log := p.desk.log()
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer func() { p.finish(err) }()

	document := strings.TrimSpace(form.Document)
	log.Info("Registering guest", logger.Action("guest_register"), logger.Guest(document))
	created, err := p.desk.Guests.RegisterGuest(ctx, form.Guest())
	if err != nil {
		log.Error("Failed to register guest", logger.Action("guest_register"), logger.Guest(document), logger.Error(err))
		return nil, fmt.Errorf("failed to register guest: %w", err)
	}
	log.Info("Guest registered", logger.Action("guest_register"), logger.Guest(document), logger.Status("created"))
	return created, nil
}

// Update applies the non-blank fields of edits to the loaded guest, keeping
// its identifiers.
func (p *GuestPage) Update(ctx context.Context, edits GuestForm) (guest *models.Guest, err error) {
	log := p.desk.log()
	current, err := p.loaded()
	if err != nil {
		return nil, err
	}

	merged := FormFromGuest(*current).Merge(edits)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer func() { p.finish(err) }()

	record := merged.Guest()
	record.ID = current.ID
	record.Address.ID = current.Address.ID

	log.Info("Updating guest", logger.Action("guest_update"), logger.Guest(record.Document))
	updated, err := p.desk.Guests.UpdateGuest(ctx, *current.ID, record)
	if err != nil {
		log.Error("Failed to update guest", logger.Action("guest_update"), logger.Guest(record.Document), logger.Error(err))
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	if updated == nil || updated.ID == nil {
		updated = &record
	}

	p.mu.Lock()
	p.Loaded = updated
	p.mu.Unlock()
	log.Info("Guest updated", logger.Action("guest_update"), logger.Guest(record.Document), logger.Status("updated"))
	return updated, nil
}

// Remove deletes the loaded guest and clears the page.
func (p *GuestPage) Remove(ctx context.Context) (err error) {
	log := p.desk.log()
	current, err := p.loaded()
	if err != nil {
		return err
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer func() { p.finish(err) }()

	log.Info("Removing guest", logger.Action("guest_delete"), logger.Guest(current.Document))
	if err := p.desk.Guests.DeleteGuest(ctx, *current.ID); err != nil {
		log.Error("Failed to remove guest", logger.Action("guest_delete"), logger.Guest(current.Document), logger.Error(err))
		return fmt.Errorf("failed to remove guest: %w", err)
	}

	p.mu.Lock()
	p.Loaded = nil
	p.mu.Unlock()
	log.Info("Guest removed", logger.Action("guest_delete"), logger.Guest(current.Document), logger.Status("deleted"))
	return nil
}
