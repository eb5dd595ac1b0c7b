package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/5w1tchy/library-admin/internal/models"
)

func TestListEmptyIsArray(t *testing.T) {
	rr := httptest.NewRecorder()
	List[int](rr, nil)
	if got := strings.TrimSpace(rr.Body.String()); got != `{"count":0,"data":[],"status":"success"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}
	cases := []struct {
		in    string
		field string
	}{
		{``, "body"},
		{`{"name":`, "body"},
		{`{"name":1}`, "name"},
		{`{"nope":"x"}`, "body"},
		{`{"name":"a"}{"name":"b"}`, "body"},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(c.in))
		var b body
		err := DecodeJSON(r, &b)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%q: want ValidationError, got %v", c.in, err)
		}
		if ve.Fields[0].Field != c.field {
			t.Fatalf("%q: field = %q, want %q", c.in, ve.Fields[0].Field, c.field)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	var b body
	if err := DecodeJSON(r, &b); err != nil || b.Name != "ok" {
		t.Fatalf("b=%+v err=%v", b, err)
	}
}

func TestOKEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	OK(rr, map[string]int{"n": 1})
	var env struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if env.Status != "success" || env.Data["n"] != 1 {
		t.Fatalf("env = %+v", env)
	}
}
