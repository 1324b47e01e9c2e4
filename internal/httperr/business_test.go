package httperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("time_conflict")

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.True(t, IsBusiness(fmt.Errorf("creating appointment: %w", err), "time_conflict"))

	assert.False(t, IsBusiness(err, "invalid_state"))
	assert.False(t, IsBusiness(fmt.Errorf("plain failure"), "time_conflict"))
	assert.False(t, IsBusiness(nil, "time_conflict"))
}

func TestBusinessError_Error(t *testing.T) {
	assert.Equal(t, "duplicate_payment_ref", ErrBusiness("duplicate_payment_ref").Error())
}
