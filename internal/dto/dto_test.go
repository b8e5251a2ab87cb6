package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/validation"
)

func TestCreateRequestDTOAcceptsDateOnly(t *testing.T) {
	body := `{"subject":"Oil leak","equipment":5,"type":"Corrective","scheduledDate":"2025-01-15"}`

	var payload CreateRequestDTO
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), payload.ScheduledDate.Time)
	assert.Equal(t, entities.RequestCorrective, payload.Type)
}

func TestCreateRequestDTOAcceptsRFC3339(t *testing.T) {
	body := `{"subject":"Oil leak","equipment":5,"type":"Corrective","scheduledDate":"2025-01-15T08:00:00Z"}`

	var payload CreateRequestDTO
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC), payload.ScheduledDate.Time)
}

func TestCreateRequestDTORequiresScheduledDate(t *testing.T) {
	v := validation.New()

	var payload CreateRequestDTO
	require.NoError(t, json.Unmarshal([]byte(`{"subject":"Oil leak","equipment":5,"type":"Corrective"}`), &payload))
	assert.Error(t, v.Validate(&payload))

	require.NoError(t, json.Unmarshal([]byte(`{"subject":"Oil leak","equipment":5,"type":"Corrective","scheduledDate":"2025-01-15"}`), &payload))
	assert.NoError(t, v.Validate(&payload))
}

func TestUpdateDTOsAcceptMixedDateFormats(t *testing.T) {
	var req UpdateRequestDTO
	require.NoError(t, json.Unmarshal([]byte(`{"scheduledDate":"2025-02-01","completedDate":"2025-02-03T17:45:00Z"}`), &req))
	require.NotNil(t, req.ScheduledDate)
	require.NotNil(t, req.CompletedDate)
	assert.Equal(t, 1, req.ScheduledDate.Day())
	assert.Equal(t, 17, req.CompletedDate.Hour())

	var eq UpdateEquipmentDTO
	require.NoError(t, json.Unmarshal([]byte(`{"warrantyExpiry":"2027-06-30"}`), &eq))
	require.NotNil(t, eq.WarrantyExpiry)
	assert.Nil(t, eq.PurchaseDate)
	assert.Equal(t, time.June, eq.WarrantyExpiry.Month())
}

func TestCreateEquipmentDTORejectsBadDate(t *testing.T) {
	var eq CreateEquipmentDTO
	assert.Error(t, json.Unmarshal([]byte(`{"name":"Forklift","purchaseDate":"30.06.2024"}`), &eq))
}
