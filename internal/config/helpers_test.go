package config

import (
	"testing"
	"time"

	"github.com/iwvelando/option-lattice/pkg/datetime"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := datetime.ParseDate(value)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", value, err)
	}
	return d
}
