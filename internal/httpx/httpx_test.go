package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-backend/internal/validation"
)

type payload struct {
	Name string `json:"name" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		body    string
		wantErr bool
	}{
		{`{"name":"a"}`, false},
		{`{"name":"a","extra":1}`, true},
		{`{"name":"a"}{"name":"b"}`, true},
		{`not json`, true},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		var p payload
		err := DecodeJSON(w, r, &p)
		if (err != nil) != tc.wantErr {
			t.Fatalf("DecodeJSON(%s) error = %v, wantErr %v", tc.body, err, tc.wantErr)
		}
	}
}

func TestValidationDetails(t *testing.T) {
	v := validation.New()
	details := ValidationDetails(v.ValidationErrors(v.Struct(payload{})))
	if details["Name"] != "required" {
		t.Fatalf("unexpected details: %v", details)
	}
	if ValidationDetails(nil) != nil {
		t.Fatalf("expected nil details")
	}
}
