package http

import (
	"testing"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/stretchr/testify/require"
)

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		name  string
		price string
		err   error
	}{
		{"integer", "600", nil},
		{"two decimals", "599.99", nil},
		{"zero", "0", nil},
		{"negative", "-1", e.ErrInvalidPrice},
		{"not a number", "gratis", e.ErrInvalidPrice},
		{"too many decimals", "1.999", e.ErrPricePrecision},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePrice(tc.price)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}
