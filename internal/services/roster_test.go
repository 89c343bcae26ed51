package services_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func TestWriteNotaryRoster(t *testing.T) {
	notaries := []models.User{
		{
			ID: 4, FirstName: "Ada", MiddleName: testutil.Ptr("B"), LastName: "Lovelace",
			Email: "ada@notary.test", PhoneNumber: "555-0111", IsNotary: true, IsActiveNotary: true,
			Commissions: []models.Commission{
				{CommissionExpireDate: datatypes.Date(time.Date(2029, 5, 1, 0, 0, 0, 0, time.UTC))},
				{CommissionExpireDate: datatypes.Date(time.Date(2027, 2, 15, 0, 0, 0, 0, time.UTC))},
			},
		},
		{ID: 9, FirstName: "Grace", LastName: "Hopper", Email: "grace@notary.test", PhoneNumber: "555-0112", IsNotary: true},
	}

	var buf bytes.Buffer
	require.NoError(t, services.WriteNotaryRoster(&buf, notaries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(services.RosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "First Name", rows[0][1])
	assert.Equal(t, []string{"4", "Ada", "B", "Lovelace", "", "ada@notary.test", "555-0111", "TRUE", "2", "2027-02-15"}, rows[1])
	assert.Equal(t, "Grace", rows[2][1])
	assert.Equal(t, "FALSE", rows[2][7])
}
