package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/EpicMandM/hotel-frontdesk/internal/desk"
	"github.com/EpicMandM/hotel-frontdesk/internal/frontdesk"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) money(v float64) string {
	return a.printer.Sprintf("%.2f", frontdesk.Round2(v))
}

func (a *App) renderRooms(summary frontdesk.Summary, rooms []frontdesk.RoomView) error {
	w := a.table()
	fmt.Fprintln(w, "NUMBER\tTYPE\tSTATUS")
	for _, r := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Number, r.Type, r.Status)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "total\t%d\n", summary.Total)
	for _, status := range summary.Categories() {
		fmt.Fprintf(w, "%s\t%d\n", status, summary.Count(status))
	}
	return w.Flush()
}

func (a *App) renderReservations(rows []desk.ReservationRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No reservations found")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tHOLDER\tROOM\tCHECK-IN\tCHECK-OUT")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Holder, r.Room, r.CheckIn, r.CheckOut)
	}
	return w.Flush()
}

func (a *App) renderInvoice(preview desk.InvoicePreview) error {
	fmt.Fprintf(a.out, "Holder: %s (%s)\n", preview.Holder, preview.Document)
	w := a.table()
	fmt.Fprintln(w, "RESERVATION\tROOM\tTYPE\tCHECK-IN\tCHECK-OUT\tNIGHTS\tPRICE\tTOTAL")
	for _, l := range preview.Invoice.Lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			l.ReservationID, l.RoomNumber, l.RoomType, l.CheckIn, l.CheckOut,
			l.Nights, a.money(l.UnitPrice), a.money(l.Total))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\t\t\t\t\t\tSubtotal\t%s\n", a.money(preview.Invoice.Subtotal))
	fmt.Fprintf(w, "\t\t\t\t\t\tIVA 21%%\t%s\n", a.money(preview.Invoice.Tax))
	fmt.Fprintf(w, "\t\t\t\t\t\tTotal\t%s\n", a.money(preview.Invoice.Total))
	return w.Flush()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func (a *App) renderGuests(guests []models.Guest) error {
	fmt.Fprintf(a.out, "%d guest(s) found\n", len(guests))
	if len(guests) == 0 {
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "NAME\tSURNAME\tDNI\tCUIT\tEMAIL\tBIRTH DATE\tPHONE\tNATIONALITY\tOCCUPATION")
	for _, g := range guests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(g.FirstName), orDash(g.LastName), orDash(g.Document),
			orDash(models.StringValue(g.CUIT)), orDash(models.StringValue(g.Email)),
			models.FormatDate(models.ParseDate(g.BirthDate)), orDash(g.Phone),
			orDash(g.Nationality), orDash(g.Occupation))
	}
	return w.Flush()
}

func (a *App) renderGuest(g models.Guest) error {
	w := a.table()
	id := "-"
	if g.ID != nil {
		id = fmt.Sprint(*g.ID)
	}
	fields := [][2]string{
		{"id", id},
		{"name", g.FullName()},
		{"document", g.Document},
		{"phone", g.Phone},
		{"email", models.StringValue(g.Email)},
		{"cuit", models.StringValue(g.CUIT)},
		{"birth date", g.BirthDate},
		{"nationality", g.Nationality},
		{"occupation", g.Occupation},
		{"address", fmt.Sprintf("%s %s, %s, %s, %s", g.Address.Street, g.Address.Number,
			g.Address.City, g.Address.Province, g.Address.Country)},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s\t%s\n", f[0], f[1])
	}
	return w.Flush()
}
