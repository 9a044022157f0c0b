package get_day_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getDaySlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type useCaseStub struct {
	resp *getDaySlots.Response
	err  error
}

func (s *useCaseStub) Execute(context.Context, *getDaySlots.Request) (*getDaySlots.Response, error) {
	return s.resp, s.err
}

func serve(stub *useCaseStub, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(stub, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/calendar/slots?"+query, nil))
	return rec
}

func TestHandle(t *testing.T) {
	stub := &useCaseStub{resp: &getDaySlots.Response{
		Date:               types.NewDate(2025, time.March, 14),
		Open:               true,
		GranularityMinutes: 30,
		Slots: []getDaySlots.Slot{
			{Time: "09:00", Booked: 0},
			{Time: "09:30", Booked: 2},
		},
	}}

	rec := serve(stub, "date=2025-03-14")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-03-14","open":true,"granularityMinutes":30,
		"slots":[{"time":"09:00","booked":0},{"time":"09:30","booked":2}]}`, rec.Body.String())
}

func TestHandle_ClosedDayHasEmptySlots(t *testing.T) {
	stub := &useCaseStub{resp: &getDaySlots.Response{Date: types.NewDate(2025, time.March, 15), GranularityMinutes: 30}}

	rec := serve(stub, "date=2025-03-15")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"open":false`)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&useCaseStub{err: &domain.SlotError{Field: "date", Reason: "must be in YYYY-MM-DD format"}}, "date=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date"`)

	assert.Equal(t, http.StatusInternalServerError, serve(&useCaseStub{err: errors.New("db")}, "date=2025-03-14").Code)
}
