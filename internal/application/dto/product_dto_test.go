package dto_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
)

const validCreate = `{"title":"Taza","description":"Taza de cerámica","price":7.5,"thumbnail":"t.png","code":"HOG-001","stock":10,"category":"hogar"}`

func TestCreateProductRequest_Valido(t *testing.T) {
	var in dto.CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(validCreate), &in))
	require.NoError(t, in.Validate())

	p := in.ToEntity()
	assert.Equal(t, "Taza", p.Title)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, 10, p.Stock)
}

func TestCreateProductRequest_PrecioComoString_Rechazado(t *testing.T) {
	var in dto.CreateProductRequest
	err := json.Unmarshal([]byte(`{"title":"Taza","price":"7.5","stock":1}`), &in)
	assert.ErrorIs(t, err, dto.ErrNotNumber)

	err = json.Unmarshal([]byte(`{"title":"Taza","price":1,"stock":"1"}`), &in)
	assert.ErrorIs(t, err, dto.ErrNotNumber)
}

func TestCreateProductRequest_CamposFaltantes(t *testing.T) {
	cases := map[string]string{
		"sin precio":      `{"title":"Taza","description":"d","thumbnail":"t","code":"c","stock":1,"category":"x"}`,
		"sin stock":       `{"title":"Taza","description":"d","price":1,"thumbnail":"t","code":"c","category":"x"}`,
		"titulo vacío":    `{"title":"","description":"d","price":1,"thumbnail":"t","code":"c","stock":1,"category":"x"}`,
		"sin categoría":   `{"title":"Taza","description":"d","price":1,"thumbnail":"t","code":"c","stock":1}`,
		"precio negativo": `{"title":"Taza","description":"d","price":-1,"thumbnail":"t","code":"c","stock":1,"category":"x"}`,
		"stock decimal":   `{"title":"Taza","description":"d","price":1,"thumbnail":"t","code":"c","stock":1.5,"category":"x"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var in dto.CreateProductRequest
			require.NoError(t, json.Unmarshal([]byte(body), &in))
			assert.ErrorIs(t, in.Validate(), domain.ErrInvalidInput)
		})
	}
}

func TestUpdateProductRequest_AceptaStringsNumericos(t *testing.T) {
	var in dto.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.5","stock":"3"}`), &in))

	patch, err := in.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Price)
	require.NotNil(t, patch.Stock)
	assert.True(t, patch.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 3, *patch.Stock)
	assert.Nil(t, patch.Title)
}

func TestUpdateProductRequest_DescartaID(t *testing.T) {
	var in dto.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"otro","id":"otro","title":"Nuevo"}`), &in))

	patch, err := in.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	assert.Equal(t, "Nuevo", *patch.Title)
	assert.False(t, patch.Empty())
}

func TestUpdateProductRequest_Rangos(t *testing.T) {
	var in dto.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":-2}`), &in))
	_, err := in.ToPatch()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = dto.UpdateProductRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"stock":"-1"}`), &in))
	_, err = in.ToPatch()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = dto.UpdateProductRequest{}
	assert.Error(t, json.Unmarshal([]byte(`{"price":"abc"}`), &in))
}

func TestUpdateProductRequest_VacioEsPatchVacio(t *testing.T) {
	var in dto.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	patch, err := in.ToPatch()
	require.NoError(t, err)
	assert.True(t, patch.Empty())
}

func TestProductQueryFromValues(t *testing.T) {
	v, _ := url.ParseQuery("page=2&limit=5&sort=asc&category=hogar&title=ta&stock=3&extra=1")
	q := dto.ProductQueryFromValues(v)

	assert.Equal(t, "2", q.Page)
	assert.Equal(t, "5", q.Limit)
	assert.Equal(t, "asc", q.Sort)
	assert.Equal(t, "hogar", q.Category)
	assert.Equal(t, "ta", q.Title)
	assert.Equal(t, "3", q.Stock)
	assert.Equal(t, "1", q.Params.Get("extra"))

	empty := dto.ProductQueryFromValues(nil)
	assert.NotNil(t, empty.Params)
}

func TestValidate_RegisterRequest(t *testing.T) {
	err := dto.Validate(dto.RegisterRequest{FirstName: "Ana", LastName: "Paz", Email: "no-es-email", Password: "123"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")

	assert.NoError(t, dto.Validate(dto.RegisterRequest{FirstName: "Ana", LastName: "Paz", Email: "ana@example.com", Password: "123456"}))
}
