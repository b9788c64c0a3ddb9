package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
)

func TestIndex_ServeHTTP(t *testing.T) {
	c := Index{
		Version:  "v0.2.5",
		Clock:    testclock.NewClock(time.Date(2024, 5, 14, 9, 30, 15, 0, time.UTC)),
		Location: time.UTC,
	}

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"online","version":"v0.2.5","timestamp":"2024-05-14 09:30:15"}`, rec.Body.String())
}

func TestHealth_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	Health{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"online"}`, rec.Body.String())
}
