package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallRequest_HasSelection(t *testing.T) {
	full := CallRequest{
		IndustryKey:  "banking",
		IndustryName: "Banking & Finance",
		UseCaseKey:   "collections",
		UseCaseName:  "Collections Reminder",
		Phone:        "+15551234567",
	}
	assert.True(t, full.HasSelection())

	for _, clear := range []func(*CallRequest){
		func(r *CallRequest) { r.IndustryKey = "" },
		func(r *CallRequest) { r.IndustryName = "" },
		func(r *CallRequest) { r.UseCaseKey = "" },
		func(r *CallRequest) { r.UseCaseName = "" },
	} {
		r := full
		clear(&r)
		assert.False(t, r.HasSelection())
	}

	// Phone is validated separately and does not affect selection.
	r := full
	r.Phone = ""
	assert.True(t, r.HasSelection())
}
