package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCitizenIdentity_IsComplete(t *testing.T) {
	full := CitizenIdentity{FullName: "Maria", CPF: "529.982.247-25", Email: "m@example.com", Phone: "71987654321"}
	assert.True(t, full.IsComplete())

	for _, blank := range []func(*CitizenIdentity){
		func(c *CitizenIdentity) { c.FullName = "" },
		func(c *CitizenIdentity) { c.CPF = "" },
		func(c *CitizenIdentity) { c.Email = "" },
		func(c *CitizenIdentity) { c.Phone = "" },
	} {
		c := full
		blank(&c)
		assert.False(t, c.IsComplete())
	}
}
