package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault_UsesEnvVar(t *testing.T) {
	t.Setenv("TEST_KEY_XYZ", "from_env")
	assert.Equal(t, "from_env", getEnvOrDefault("TEST_KEY_XYZ", "fallback"))
}

func TestGetEnvOrDefault_UsesDefault(t *testing.T) {
	_ = os.Unsetenv("TEST_KEY_XYZ")
	assert.Equal(t, "fallback", getEnvOrDefault("TEST_KEY_XYZ", "fallback"))
}

func TestGetEnvOrDefault_EmptyEnvUsesDefault(t *testing.T) {
	t.Setenv("TEST_KEY_XYZ", "")
	assert.Equal(t, "fallback", getEnvOrDefault("TEST_KEY_XYZ", "fallback"))
}

func jsonReply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// newTestApp points the CLI at an in-memory backend and returns the
// rendered output buffer.
func newTestApp(t *testing.T, mux *http.ServeMux) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing.toml"))
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("HOTEL_API_URL", srv.URL)
	t.Setenv("HOTEL_API_TIMEOUT", "")
	t.Setenv("HOTEL_DEBUG", "")
	t.Setenv("FRONTDESK_LANG", "en")

	var out bytes.Buffer
	return &App{
		ctx:    context.Background(),
		logger: logger.Discard(),
		out:    &out,
	}, &out
}

func TestRun_NoArgs(t *testing.T) {
	var out bytes.Buffer
	a := &App{ctx: context.Background(), logger: logger.Discard(), out: &out}

	assert.Error(t, a.run(nil))
	assert.Contains(t, out.String(), "Usage: frontdesk")

	out.Reset()
	assert.NoError(t, a.run([]string{"help"}))
	assert.Contains(t, out.String(), "reservations search")
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _ := newTestApp(t, http.NewServeMux())
	err := a.run([]string{"checkout"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "checkout"`)
}

func TestRun_MissingBackendURL(t *testing.T) {
	a, _ := newTestApp(t, http.NewServeMux())
	t.Setenv("HOTEL_API_URL", "")

	err := a.run([]string{"rooms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOTEL_API_URL is required")
}

func TestRooms(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /habitaciones/listar", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `[
			{"numero":"101","estado":"LIBRE","tipoHabitacion":{"nombre":"Doble"}},
			{"numero":"102","estado":"OCUPADA","tipoHabitacion":{"nombre":"Suite"}},
			{"numero":"103","estado":"LIBRE"}
		]`)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"rooms"}))
	assert.Contains(t, out.String(), "102")
	assert.Regexp(t, `total\s+3`, out.String())
	assert.Regexp(t, `libre\s+2`, out.String())
	assert.Regexp(t, `mantenimiento\s+0`, out.String())

	out.Reset()
	require.NoError(t, a.run([]string{"rooms", "-estado", "OCUPADA"}))
	assert.Contains(t, out.String(), "102")
	assert.NotContains(t, out.String(), "101")
	assert.Regexp(t, `total\s+3`, out.String(), "the filter does not change the summary")
}

func TestReservationsSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reservas/buscar", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Garcia Lopez", r.URL.Query().Get("nombre"))
		jsonReply(w, http.StatusOK, `[{"id":12,"fechaIngreso":"2024-01-01","fechaEgreso":"2024-01-03",
			"habitacion":{"numero":"101"},"responsable":{"nombre":"Ana","apellido":"Garcia Lopez"}}]`)
	})
	mux.HandleFunc("GET /reservas/buscar-por-dni", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `[]`)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"reservations", "search", "Garcia", "Lopez"}))
	assert.Contains(t, out.String(), "Ana Garcia Lopez")
	assert.Contains(t, out.String(), "2024-01-03")

	out.Reset()
	require.NoError(t, a.run([]string{"reservations", "search", "30111222"}))
	assert.Contains(t, out.String(), "No reservations found")

	assert.Error(t, a.run([]string{"reservations", "search"}))
}

func TestReservationsCancel(t *testing.T) {
	var cancelled []string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /reservas/{id}", func(w http.ResponseWriter, r *http.Request) {
		cancelled = append(cancelled, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"reservations", "cancel", "42"}))
	assert.Equal(t, []string{"42"}, cancelled)
	assert.Contains(t, out.String(), "Reservation 42 cancelled")

	err := a.run([]string{"reservations", "cancel", "abc"})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Len(t, cancelled, 1)
}

func TestReservationsCreate(t *testing.T) {
	var sent models.CreateReservationRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /reservas/crear", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		jsonReply(w, http.StatusCreated, `{"id":77}`)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"reservations", "create",
		"-dni", "30111222", "-room", "101", "-in", "2024-03-01", "-out", "2024-03-04"}))
	assert.Equal(t, "101", sent.Room.Number)
	assert.Equal(t, "30111222", sent.Holder.Document)
	assert.Equal(t, "2024-03-01", sent.CheckIn)
	assert.Contains(t, out.String(), "Reservation 77 created")

	err := a.run([]string{"reservations", "create", "-dni", "30111222"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func invoiceBackend(t *testing.T, created *[]models.InvoiceRequest) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reservas/buscar-por-dni", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `[
			{"id":1,"fechaIngreso":"2024-01-01","fechaEgreso":"2024-01-03",
			 "habitacion":{"numero":"101","tipoHabitacion":{"nombre":"Doble","costoPorNoche":100}},
			 "responsable":{"nombre":"Ana","apellido":"Garcia"}},
			{"id":2,"fechaIngreso":"2024-01-05","fechaEgreso":"2024-01-05",
			 "habitacion":{"numero":"102","tipoHabitacion":{"nombre":"Suite","costoPorNoche":200}}}
		]`)
	})
	mux.HandleFunc("POST /facturas/crear", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(created))
		jsonReply(w, http.StatusCreated, `[{"tipo":"A"},{"tipo":"A"}]`)
	})
	return mux
}

func TestInvoicePreviewOnly(t *testing.T) {
	var created []models.InvoiceRequest
	a, out := newTestApp(t, invoiceBackend(t, &created))

	require.NoError(t, a.run([]string{"invoice", "-dni", "30111222"}))
	assert.Contains(t, out.String(), "Holder: Ana Garcia (30111222)")
	assert.Regexp(t, `Subtotal\s+200\.00`, out.String())
	assert.Regexp(t, `IVA 21%\s+42\.00`, out.String())
	assert.Regexp(t, `Total\s+242\.00`, out.String())
	assert.Empty(t, created, "preview does not emit")
}

func TestInvoiceConfirm(t *testing.T) {
	var created []models.InvoiceRequest
	a, out := newTestApp(t, invoiceBackend(t, &created))

	require.NoError(t, a.run([]string{"invoice", "-dni", "30111222", "-confirm"}))
	require.Len(t, created, 2)
	assert.Equal(t, 242.0, created[0].Amount)
	assert.Equal(t, 0.0, created[1].Amount)
	assert.Equal(t, created[0].IssuedAt, created[1].IssuedAt)
	assert.Contains(t, out.String(), "Emitted 2 invoices, total 242.00")
}

func TestInvoiceRequiresDocument(t *testing.T) {
	a, _ := newTestApp(t, http.NewServeMux())
	assert.ErrorIs(t, a.run([]string{"invoice"}), models.ErrValidation)
}

const storedGuestJSON = `[{"id":9,"nombre":"Ana","apellido":"Garcia","nroDocumento":"30111222",
	"telefono":"3425551234","fechaDeNacimiento":"1990-05-01","nacionalidad":"Argentina",
	"ocupacion":"Docente","direccion":{"id":90,"calle":"San Martín","numero":"1234",
	"codigoPostal":"3000","localidad":"Santa Fe","provincia":"Santa Fe","pais":"Argentina"}}]`

func TestGuestsFind(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pasajeros/buscar", func(w http.ResponseWriter, r *http.Request) {
		var req models.GuestSearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Value == "30111222" {
			jsonReply(w, http.StatusOK, storedGuestJSON)
			return
		}
		jsonReply(w, http.StatusOK, `[]`)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"guests", "find", "30111222"}))
	assert.Regexp(t, `name\s+Ana Garcia`, out.String())
	assert.Contains(t, out.String(), "San Martín 1234")

	assert.ErrorIs(t, a.run([]string{"guests", "find", "1"}), models.ErrNotFound)
}

func TestGuestsSearch(t *testing.T) {
	var requests []models.GuestSearchRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pasajeros/buscar", func(w http.ResponseWriter, r *http.Request) {
		var req models.GuestSearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)
		switch req.Value {
		case "Garcia":
			jsonReply(w, http.StatusOK, `{"resultados":[
				{"nombre":"Ana","apellido":"Garcia","nroDocumento":"30111222","fechaDeNacimiento":"1990-05-01"},
				{"nombre":"Luis","apellido":"Garcia","nroDocumento":"28999111"}]}`)
		case "boom":
			jsonReply(w, http.StatusInternalServerError, `{"message":"Error interno"}`)
		default:
			jsonReply(w, http.StatusOK, `[]`)
		}
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"guests", "search", "-by", "apellido", "Garcia"}))
	require.Len(t, requests, 1)
	assert.Equal(t, models.CriterionSurname, requests[0].Criterion)
	assert.Contains(t, out.String(), "2 guest(s) found")
	assert.Contains(t, out.String(), "28999111")
	assert.Contains(t, out.String(), "1990-05-01")

	out.Reset()
	require.NoError(t, a.run([]string{"guests", "search", "Nadie"}))
	assert.Equal(t, models.CriterionName, requests[1].Criterion, "name is the default criterion")
	assert.Contains(t, out.String(), "0 guest(s) found")

	err := a.run([]string{"guests", "search", "boom"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error interno")

	assert.ErrorIs(t, a.run([]string{"guests", "search", "-by", "email", "x"}), models.ErrValidation)
	assert.Error(t, a.run([]string{"guests", "search", "-by", "dni"}))
	assert.Len(t, requests, 3, "invalid searches never reach the backend")
}

func TestGuestsRegister(t *testing.T) {
	var sent map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pasajeros/dar-alta", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		jsonReply(w, http.StatusCreated, `{"id":5,"nombre":"Ana","apellido":"Garcia","nroDocumento":"30111222"}`)
	})
	a, out := newTestApp(t, mux)

	err := a.run([]string{"guests", "register",
		"-nombre", "Ana", "-apellido", "Garcia", "-dni", "30111222", "-telefono", "3425551234",
		"-nacimiento", "1990-05-01", "-nacionalidad", "Argentina", "-ocupacion", "Docente",
		"-calle", "San Martín", "-numero", "1234", "-cp", "3000", "-localidad", "Santa Fe",
		"-provincia", "Santa Fe", "-pais", "Argentina"})
	require.NoError(t, err)
	assert.Equal(t, "30111222", sent["nroDocumento"])
	assert.NotContains(t, sent, "email")
	assert.Contains(t, out.String(), "Guest registered")
	assert.Regexp(t, `id\s+5`, out.String())

	sent = nil
	err = a.run([]string{"guests", "register", "-nombre", "Ana"})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Nil(t, sent)
}

func TestGuestsUpdate(t *testing.T) {
	var sent models.Guest
	var path string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pasajeros/buscar", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, storedGuestJSON)
	})
	mux.HandleFunc("PUT /pasajeros/{id}", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.WriteHeader(http.StatusNoContent)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"guests", "update", "30111222", "-telefono", "111", "-localidad", "Rosario"}))
	assert.Equal(t, "/pasajeros/9", path)
	assert.Equal(t, "111", sent.Phone)
	assert.Equal(t, "Rosario", sent.Address.City)
	assert.Equal(t, "Garcia", sent.LastName)
	require.NotNil(t, sent.Address.ID)
	assert.Equal(t, int64(90), *sent.Address.ID)
	assert.Contains(t, out.String(), "Guest updated")
}

func TestGuestsDelete(t *testing.T) {
	var path string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pasajeros/buscar", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, storedGuestJSON)
	})
	mux.HandleFunc("DELETE /pasajeros/{id}", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	a, out := newTestApp(t, mux)

	require.NoError(t, a.run([]string{"guests", "delete", "30111222"}))
	assert.Equal(t, "/pasajeros/9", path)
	assert.Contains(t, out.String(), "Guest 30111222 removed")
}

func TestBackendErrorSurfaces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /habitaciones/listar", func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusServiceUnavailable, `{"message":"Base de datos no disponible"}`)
	})
	a, _ := newTestApp(t, mux)

	err := a.run([]string{"rooms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rooms")
}

func TestSplitDocument(t *testing.T) {
	doc, rest := splitDocument([]string{"30111222", "-telefono", "1"})
	assert.Equal(t, "30111222", doc)
	assert.Equal(t, []string{"-telefono", "1"}, rest)

	doc, rest = splitDocument([]string{"-telefono", "1"})
	assert.Empty(t, doc)
	assert.Len(t, rest, 2)
}
