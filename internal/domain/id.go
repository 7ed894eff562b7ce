package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewSponsorID генерирует новый идентификатор документа
func NewSponsorID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// ParseSponsorID проверяет, что строка является корректным ключом хранилища
func ParseSponsorID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidSponsorID
	}
	return oid, nil
}
