package service

import (
	"errors"
	"testing"

	"github.com/gemachapp/ledger-service/internal/models"
)

func TestValidateClient(t *testing.T) {
	valid := models.Client{FirstName: "Moshe", LastName: "Katz", Phone: "0521234567"}

	cases := []struct {
		name   string
		mutate func(c *models.Client)
		wantOK bool
	}{
		{"valid", func(c *models.Client) {}, true},
		{"valid with spaces", func(c *models.Client) { c.LastName = "Ben David" }, true},
		{"first name too short", func(c *models.Client) { c.FirstName = "Mo" }, false},
		{"first name with digits", func(c *models.Client) { c.FirstName = "Moshe7" }, false},
		{"last name empty", func(c *models.Client) { c.LastName = "" }, false},
		{"phone too short", func(c *models.Client) { c.Phone = "052123" }, false},
		{"phone too long", func(c *models.Client) { c.Phone = "0521234567890123456" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			err := validateClient(&c)
			if tc.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.wantOK {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("err = %v, want ErrValidation", err)
				}
			}
		})
	}
}
