package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("normalizes fields", func(t *testing.T) {
		c, err := NewClient("  Maria Silva  ", " Maria.Silva@Example.COM ", "+55 11 99999-0000", "123.456.789-00")
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", c.Name)
		assert.Equal(t, "maria.silva@example.com", c.Email)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewClient("   ", "maria@example.com", "", "")
		assert.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewClient("Maria", "", "", "")
		assert.Error(t, err)

		_, err = NewClient("Maria", "not-an-email", "", "")
		assert.Error(t, err)
	})
}

func TestClient_UpdateContact(t *testing.T) {
	c, err := NewClient("Maria", "maria@example.com", "", "")
	require.NoError(t, err)

	require.NoError(t, c.UpdateContact("New.Mail@Example.com", "11 98888-7777"))
	assert.Equal(t, "new.mail@example.com", c.Email)
	assert.Equal(t, "11 98888-7777", c.Phone)

	assert.Error(t, c.UpdateContact("bad", ""))
}

func TestEmployeeRole_IsValid(t *testing.T) {
	assert.True(t, EmployeeRoleMechanic.IsValid())
	assert.True(t, EmployeeRoleAttendant.IsValid())
	assert.True(t, EmployeeRoleManager.IsValid())
	assert.False(t, EmployeeRole("INTERN").IsValid())
	assert.False(t, EmployeeRole("").IsValid())
}

func TestNewEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e, err := NewEmployee("João", "joao@shop.com", EmployeeRoleMechanic)
		require.NoError(t, err)
		assert.True(t, e.Active)
		assert.True(t, e.IsMechanic())
	})

	t.Run("attendant is not a mechanic", func(t *testing.T) {
		e, err := NewEmployee("Ana", "ana@shop.com", EmployeeRoleAttendant)
		require.NoError(t, err)
		assert.False(t, e.IsMechanic())
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewEmployee("João", "joao@shop.com", EmployeeRole("INTERN"))
		assert.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewEmployee("João", "joao", EmployeeRoleMechanic)
		assert.Error(t, err)
	})
}

func TestEmployee_Deactivate(t *testing.T) {
	e, err := NewEmployee("João", "joao@shop.com", EmployeeRoleMechanic)
	require.NoError(t, err)

	e.Deactivate()
	assert.False(t, e.Active)
}

func TestNewVehicle(t *testing.T) {
	t.Run("normalizes plate", func(t *testing.T) {
		v, err := NewVehicle(uuid.New(), " abc 1d23 ", "Fiat", "Uno", 2015)
		require.NoError(t, err)
		assert.Equal(t, "ABC1D23", v.Plate)
	})

	t.Run("requires client", func(t *testing.T) {
		_, err := NewVehicle(uuid.Nil, "ABC1D23", "Fiat", "Uno", 2015)
		assert.Error(t, err)
	})

	t.Run("empty plate", func(t *testing.T) {
		_, err := NewVehicle(uuid.New(), "   ", "Fiat", "Uno", 2015)
		assert.Error(t, err)
	})

	t.Run("requires brand and model", func(t *testing.T) {
		_, err := NewVehicle(uuid.New(), "ABC1D23", "", "Uno", 2015)
		assert.Error(t, err)

		_, err = NewVehicle(uuid.New(), "ABC1D23", "Fiat", "", 2015)
		assert.Error(t, err)
	})

	t.Run("invalid year", func(t *testing.T) {
		_, err := NewVehicle(uuid.New(), "ABC1D23", "Fiat", "Uno", 1899)
		assert.Error(t, err)
	})
}
