package validators

import (
	"strings"
	"testing"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_SanitizesAndBinds(t *testing.T) {
	body := `{"title":"  <Chair>  ","description":"Nice <b>oak</b> chair","category":"Furniture","extra":1}`

	var req models.ItemRequest
	data, err := Decode(strings.NewReader(body), &req, "title")

	require.NoError(t, err)
	assert.Equal(t, "Chair", req.Title)
	assert.Equal(t, "Nice boak/b chair", req.Description)
	assert.Equal(t, "Furniture", req.Category)
	assert.Contains(t, data, "extra")
}

func TestDecode_NestedAddress(t *testing.T) {
	body := `{"name":"Ann","address":{"city":" <Pune> ","zipCode":411001}}`

	var req models.ProfileUpdateRequest
	_, err := Decode(strings.NewReader(body), &req)

	require.NoError(t, err)
	require.NotNil(t, req.Address)
	assert.Equal(t, "Pune", req.Address.City)
	assert.Equal(t, "411001", req.Address.ZipCode)
}

func TestDecode_MissingRequired(t *testing.T) {
	var req models.RegisterRequest
	_, err := Decode(strings.NewReader(`{"name":"  "}`), &req, "name", "email", "password")

	apiErr, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgMissingRequiredFields, apiErr.Message())
	assert.Len(t, apiErr.Fields(), 3)
}

func TestDecode_EmptyBodyReportsRequired(t *testing.T) {
	var req models.LoginRequest
	_, err := Decode(strings.NewReader(""), &req, "email", "password")

	apiErr, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"email":    apierr.MsgRequiredField,
		"password": apierr.MsgRequiredField,
	}, apiErr.Fields())
}

func TestDecode_InvalidJSON(t *testing.T) {
	tests := []string{`{"title":`, `[1,2,3]`, `"string"`}

	for _, body := range tests {
		var req models.ItemRequest
		_, err := Decode(strings.NewReader(body), &req)

		apiErr, ok := apierr.As(err)
		require.True(t, ok, body)
		assert.Equal(t, MsgInvalidJSON, apiErr.Message())
		assert.ErrorIs(t, err, ErrDecodingPayload)
	}
}

func TestDecode_NullBody(t *testing.T) {
	var req models.ItemRequest
	data, err := Decode(strings.NewReader("null"), &req)

	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestBind_TypeMismatch(t *testing.T) {
	var req models.ProfileUpdateRequest
	err := Bind(map[string]any{"address": "not an object"}, &req)

	apiErr, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgInvalidPayload, apiErr.Message())
}
