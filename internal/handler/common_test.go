package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ctxWith(key string, val interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if val != nil {
		c.Set(key, val)
	}
	return c
}

func TestGetAccountID(t *testing.T) {
	cases := []struct {
		name    string
		val     interface{}
		want    uint64
		wantErr bool
	}{
		{"uint64", uint64(42), 42, false},
		{"int", 7, 7, false},
		{"int64", int64(9), 9, false},
		{"float64 from jwt claim", float64(12), 12, false},
		{"numeric string", "33", 33, false},
		{"non-numeric string", "abc", 0, true},
		{"unset", nil, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := getAccountID(ctxWith("account_id", tc.val))
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("account id = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	newCtx := func(raw string) echo.Context {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c
	}

	if id, ok := pathID(newCtx("15"), "id"); !ok || id != 15 {
		t.Errorf("pathID(15) = %d/%v, want 15/true", id, ok)
	}
	if _, ok := pathID(newCtx("0"), "id"); ok {
		t.Error("zero id should be rejected")
	}
	if _, ok := pathID(newCtx("abc"), "id"); ok {
		t.Error("non-numeric id should be rejected")
	}
	if _, ok := pathID(newCtx("-3"), "id"); ok {
		t.Error("negative id should be rejected")
	}
}

func TestParseDateAndClock(t *testing.T) {
	if d, ok := parseDate("2026-06-10"); !ok || d.Year() != 2026 || d.Month() != 6 || d.Day() != 10 {
		t.Errorf("parseDate(2026-06-10) = %v/%v", d, ok)
	}
	if _, ok := parseDate("10/06/2026"); ok {
		t.Error("slash-separated date should be rejected")
	}
	if _, ok := parseDate(""); ok {
		t.Error("empty date should be rejected")
	}

	for _, s := range []string{"00:00", "09:30", "23:59"} {
		if !validClock(s) {
			t.Errorf("validClock(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"24:00", "9:3", "noon", ""} {
		if validClock(s) {
			t.Errorf("validClock(%q) = true, want false", s)
		}
	}
}
