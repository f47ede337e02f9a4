package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclab/program-api/internal/domain"
)

func TestNullableMethod_UnmarshalJSON(t *testing.T) {
	t.Run("absent field stays unset", func(t *testing.T) {
		var req UpdatePositionRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Governor"}`), &req))

		assert.False(t, req.ElectionMethod.Set)
		assert.Nil(t, req.ElectionMethod.Value)
	})

	t.Run("explicit null is set with nil value", func(t *testing.T) {
		var req UpdatePositionRequest
		require.NoError(t, json.Unmarshal([]byte(`{"election_method":null}`), &req))

		assert.True(t, req.ElectionMethod.Set)
		assert.Nil(t, req.ElectionMethod.Value)
	})

	t.Run("string value is set with value", func(t *testing.T) {
		var req UpdatePositionRequest
		require.NoError(t, json.Unmarshal([]byte(`{"election_method":"ranked"}`), &req))

		assert.True(t, req.ElectionMethod.Set)
		require.NotNil(t, req.ElectionMethod.Value)
		assert.Equal(t, domain.MethodRanked, *req.ElectionMethod.Value)
	})

	t.Run("non-string value fails", func(t *testing.T) {
		var req UpdatePositionRequest
		assert.Error(t, json.Unmarshal([]byte(`{"election_method":5}`), &req))
	})
}

func TestCreatePositionRequest_Validate(t *testing.T) {
	req := CreatePositionRequest{Name: "Governor"}
	assert.NoError(t, req.Validate())

	req = CreatePositionRequest{}
	assert.Error(t, req.Validate())

	req = CreatePositionRequest{Name: "G"}
	assert.Error(t, req.Validate())
}

func TestUpdatePositionRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdatePositionRequest{}).Validate())

	active := "active"
	assert.NoError(t, (&UpdatePositionRequest{Status: &active}).Validate())

	open := "open"
	assert.Error(t, (&UpdatePositionRequest{Status: &open}).Validate())
}
