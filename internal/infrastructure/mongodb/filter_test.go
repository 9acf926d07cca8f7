package mongodb

import (
	"testing"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildProductFilter(t *testing.T) {
	stock := 0

	t.Run("vacío no filtra", func(t *testing.T) {
		assert.Equal(t, bson.M{}, buildProductFilter(entity.ProductFilter{}))
	})

	t.Run("categoría exacta y stock", func(t *testing.T) {
		f := buildProductFilter(entity.ProductFilter{Category: "hogar", Stock: &stock})
		assert.Equal(t, bson.M{"category": "hogar", "stock": 0}, f)
	})

	t.Run("título escapa metacaracteres", func(t *testing.T) {
		f := buildProductFilter(entity.ProductFilter{Title: "a.b(c)"})
		assert.Equal(t, bson.M{"$regex": `a\.b\(c\)`, "$options": "i"}, f["title"])
	})
}

func TestBuildProductSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, buildProductSort(entity.SortNone))
	assert.Equal(t, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}, buildProductSort(entity.SortPriceAsc))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}, buildProductSort(entity.SortPriceDesc))
}

func TestBuildProductUpdate_SoloCamposPresentes(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	title := "Nuevo"
	price := decimal.RequireFromString("9.90")

	upd := buildProductUpdate(entity.ProductPatch{Title: &title, Price: &price}, now)

	set, ok := upd["$set"].(bson.M)
	require.True(t, ok)
	assert.Len(t, set, 3)
	assert.Equal(t, "Nuevo", set["title"])
	assert.Equal(t, price, set["price"])
	assert.Equal(t, now, set["updatedAt"])
	assert.NotContains(t, set, "_id")
}
