package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"

	"github.com/anemettemadsen33/RentHub-sub010/config"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

func buildCalculateTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	cfg := &config.Config{TaxRatePercent: 10}
	app.Post("/api/booking/calculate", CalculateBooking(cfg))

	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func postJSON(t *testing.T, app *iris.Application, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestCalculateBookingRejectsMissingFields(t *testing.T) {
	app := buildCalculateTestApp()

	resp := postJSON(t, app, "/api/booking/calculate", `{}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty payload, got %d", resp.Code)
	}
}

func TestCalculateBookingRejectsMalformedDates(t *testing.T) {
	app := buildCalculateTestApp()

	resp := postJSON(t, app, "/api/booking/calculate",
		`{"property_id": 1, "check_in": "06/01/2025", "check_out": "2025-06-03", "guests": 2}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed check_in, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "checkIn") {
		t.Fatalf("expected the error to name the checkIn field, got %s", resp.Body.String())
	}

	resp2 := postJSON(t, app, "/api/booking/calculate",
		`{"property_id": 1, "check_in": "2025-06-01", "check_out": "June 3rd", "guests": 2}`)
	if resp2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed check_out, got %d", resp2.Code)
	}
}

func TestCalculateBookingRejectsZeroGuests(t *testing.T) {
	app := buildCalculateTestApp()

	resp := postJSON(t, app, "/api/booking/calculate",
		`{"property_id": 1, "check_in": "2025-06-01", "check_out": "2025-06-03", "guests": 0}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero guests, got %d", resp.Code)
	}
}

func TestIsExclusionViolation(t *testing.T) {
	violation := errors.New(`ERROR: conflicting key value violates exclusion constraint "bookings_no_overlap" (SQLSTATE 23P01)`)
	if !isExclusionViolation(violation) {
		t.Fatal("constraint violation must be detected")
	}

	if isExclusionViolation(nil) {
		t.Fatal("nil error is not a violation")
	}
	if isExclusionViolation(errors.New(`duplicate key value violates unique constraint "users_email_key"`)) {
		t.Fatal("unrelated constraint errors must not be treated as booking conflicts")
	}
}

func TestBookingConflictResponse(t *testing.T) {
	app := iris.New()
	app.Post("/conflict", func(ctx iris.Context) {
		utils.CreateBookingConflict(ctx)
	})
	if err := app.Build(); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, app, "/conflict", `{}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "booking_conflict") {
		t.Fatalf("expected the distinct conflict code in the body, got %s", body)
	}
	if !strings.Contains(body, "no longer available") {
		t.Fatalf("expected the conflict detail in the body, got %s", body)
	}
}
