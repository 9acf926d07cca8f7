package mongodb

import (
	"regexp"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
)

// buildProductFilter traduce el filtro del dominio a una consulta Mongo.
// El título se escapa: el usuario busca una subcadena literal, no una expresión regular.
func buildProductFilter(f entity.ProductFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Title != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Title), "$options": "i"}
	}
	if f.Stock != nil {
		filter["stock"] = *f.Stock
	}
	return filter
}

// buildProductSort ordena por precio cuando se pide; _id desempata para que la paginación sea estable.
func buildProductSort(s entity.SortDirection) bson.D {
	switch s {
	case entity.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case entity.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
}

// buildProductUpdate arma el $set con los campos presentes en el patch.
func buildProductUpdate(p entity.ProductPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Thumbnail != nil {
		set["thumbnail"] = *p.Thumbnail
	}
	if p.Code != nil {
		set["code"] = *p.Code
	}
	if p.Stock != nil {
		set["stock"] = *p.Stock
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	return bson.M{"$set": set}
}
