package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type serviceStub struct {
	err error
}

func (s *serviceStub) GetByID(_ context.Context, id int64) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Name: "Ann", Status: "pending"}, nil
}

func serve(stub *serviceStub, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/bookings/{bookingId}", NewHandler(stub, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&serviceStub{}, "/api/bookings/9")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)

	assert.Equal(t, http.StatusBadRequest, serve(&serviceStub{}, "/api/bookings/0").Code)
	assert.Equal(t, http.StatusNotFound, serve(&serviceStub{err: bookings.ErrBookingNotFound}, "/api/bookings/9").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&serviceStub{err: errors.New("db")}, "/api/bookings/9").Code)
}
