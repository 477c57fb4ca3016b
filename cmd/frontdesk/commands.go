package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/EpicMandM/hotel-frontdesk/internal/desk"
	"github.com/EpicMandM/hotel-frontdesk/internal/frontdesk"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

const usage = `Usage: frontdesk <command> [arguments]

Commands:
  rooms [-estado X]                          list rooms and the per-status summary
  reservations search <name|document>        find reservations
  reservations cancel <id>                   cancel a reservation
  reservations create -dni D -room N -in YYYY-MM-DD -out YYYY-MM-DD
  invoice -dni D [-confirm]                  price a guest's reservations, optionally emit invoices
  guests search [-by nombre|apellido|dni] <q> list matching guests
  guests find <dni>                          show a guest
  guests register [flags]                    register a guest
  guests update <dni> [flags]                edit a guest
  guests delete <dni>                        remove a guest
  serve [-addr :8081]                        run the JSON gateway
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usage)
}

func (a *App) dispatch(args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "rooms":
		return a.roomsCmd(rest)
	case "reservations":
		return a.reservationsCmd(rest)
	case "invoice":
		return a.invoiceCmd(rest)
	case "guests":
		return a.guestsCmd(rest)
	case "serve":
		return a.serveCmd(rest)
	default:
		printUsage(a.out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *App) roomsCmd(args []string) error {
	fs := newFlagSet("rooms")
	status := fs.String("estado", "", "show only rooms in this status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page := a.core.Desk().NewRoomsPage()
	if err := page.Load(a.ctx); err != nil {
		return err
	}
	if s := strings.TrimSpace(*status); s != "" {
		page.Toggle(frontdesk.NormalizeStatus(strings.ToUpper(s)))
	}
	return a.renderRooms(page.Summary(), page.Visible())
}

func (a *App) reservationsCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("reservations: expected search, cancel or create")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "search":
		query := strings.Join(rest, " ")
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("reservations search: query is required")
		}
		page := a.core.Desk().NewCancelPage()
		page.Type(query)
		if err := page.Search(a.ctx); err != nil {
			return err
		}
		return a.renderReservations(page.Visible())

	case "cancel":
		if len(rest) != 1 {
			return fmt.Errorf("reservations cancel: expected one reservation id")
		}
		page := a.core.Desk().NewCancelPage()
		if err := page.Cancel(a.ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Reservation %s cancelled\n", strings.TrimSpace(rest[0]))
		return nil

	case "create":
		fs := newFlagSet("reservations create")
		var form desk.ReservationForm
		fs.StringVar(&form.Document, "dni", "", "holder document number")
		fs.StringVar(&form.Room, "room", "", "room number")
		fs.StringVar(&form.CheckIn, "in", "", "check-in date (YYYY-MM-DD)")
		fs.StringVar(&form.CheckOut, "out", "", "check-out date (YYYY-MM-DD)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		created, err := a.core.Desk().NewReservePage().Submit(a.ctx, form)
		if err != nil {
			return err
		}
		if created != nil && created.ID != 0 {
			fmt.Fprintf(a.out, "Reservation %d created\n", created.ID)
			return nil
		}
		fmt.Fprintln(a.out, "Reservation created")
		return nil

	default:
		return fmt.Errorf("reservations: unknown subcommand %q", sub)
	}
}

func (a *App) invoiceCmd(args []string) error {
	fs := newFlagSet("invoice")
	document := fs.String("dni", "", "holder document number")
	confirm := fs.Bool("confirm", false, "emit the invoices after printing the preview")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page := a.core.Desk().NewInvoicePage()
	if err := page.Search(a.ctx, *document); err != nil {
		return err
	}
	if err := a.renderInvoice(page.Preview()); err != nil {
		return err
	}
	if !*confirm {
		return nil
	}

	result, err := page.Confirm(a.ctx)
	if err != nil {
		return err
	}
	a.printer.Fprintf(a.out, "Emitted %d invoices, total %.2f\n", result.Requested, result.Total)
	return nil
}

func guestFlags(fs *flag.FlagSet, form *desk.GuestForm) {
	fs.StringVar(&form.FirstName, "nombre", "", "first name")
	fs.StringVar(&form.LastName, "apellido", "", "last name")
	fs.StringVar(&form.Document, "dni", "", "document number")
	fs.StringVar(&form.Phone, "telefono", "", "phone")
	fs.StringVar(&form.Email, "email", "", "email (optional)")
	fs.StringVar(&form.CUIT, "cuit", "", "CUIT (optional)")
	fs.StringVar(&form.BirthDate, "nacimiento", "", "birth date (YYYY-MM-DD)")
	fs.StringVar(&form.Nationality, "nacionalidad", "", "nationality")
	fs.StringVar(&form.Occupation, "ocupacion", "", "occupation")
	fs.StringVar(&form.Street, "calle", "", "street")
	fs.StringVar(&form.Number, "numero", "", "street number")
	fs.StringVar(&form.Apartment, "departamento", "", "apartment")
	fs.StringVar(&form.Floor, "piso", "", "floor")
	fs.StringVar(&form.PostalCode, "cp", "", "postal code")
	fs.StringVar(&form.City, "localidad", "", "city")
	fs.StringVar(&form.Province, "provincia", "", "province")
	fs.StringVar(&form.Country, "pais", "", "country")
}

// splitDocument takes a leading positional document off args so the flags
// after it still parse.
func splitDocument(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func (a *App) guestsCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("guests: expected search, find, register, update or delete")
	}
	sub, rest := args[0], args[1:]
	page := a.core.Desk().NewGuestPage()

	switch sub {
	case "search":
		fs := newFlagSet("guests search")
		by := fs.String("by", string(models.CriterionName), "search criterion: nombre, apellido or dni")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		criterion, err := models.ParseGuestCriterion(*by)
		if err != nil {
			return err
		}
		query := strings.Join(fs.Args(), " ")
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("guests search: query is required")
		}
		results, err := a.core.Desk().NewGuestSearchPage().Search(a.ctx, criterion, query)
		if err != nil {
			return err
		}
		return a.renderGuests(results)

	case "find":
		if len(rest) != 1 {
			return fmt.Errorf("guests find: expected one document number")
		}
		guest, err := page.Lookup(a.ctx, rest[0])
		if err != nil {
			return err
		}
		return a.renderGuest(*guest)

	case "register":
		fs := newFlagSet("guests register")
		var form desk.GuestForm
		guestFlags(fs, &form)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		created, err := page.Register(a.ctx, form)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Guest registered")
		if created == nil {
			return nil
		}
		return a.renderGuest(*created)

	case "update":
		document, flags := splitDocument(rest)
		fs := newFlagSet("guests update")
		var edits desk.GuestForm
		guestFlags(fs, &edits)
		if err := fs.Parse(flags); err != nil {
			return err
		}
		if _, err := page.Lookup(a.ctx, document); err != nil {
			return err
		}
		updated, err := page.Update(a.ctx, edits)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Guest updated")
		return a.renderGuest(*updated)

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("guests delete: expected one document number")
		}
		if _, err := page.Lookup(a.ctx, rest[0]); err != nil {
			return err
		}
		if err := page.Remove(a.ctx); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Guest %s removed\n", strings.TrimSpace(rest[0]))
		return nil

	default:
		return fmt.Errorf("guests: unknown subcommand %q", sub)
	}
}

func (a *App) serveCmd(args []string) error {
	fs := newFlagSet("serve")
	addr := fs.String("addr", "", "listen address (defaults to the gateway config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.core.Serve(a.ctx, *addr)
}
