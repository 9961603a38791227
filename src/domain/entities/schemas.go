package entities

import "storeadmin/src/domain"

func baseFields(fields ...domain.Field) []domain.Field {
	base := []domain.Field{
		{Name: "id", Column: "id", Label: "ID", Type: domain.FieldTypeID},
		{Name: "createdAt", Column: "created_at", Label: "Created At", Type: domain.FieldTypeDateTime, ReadOnly: true},
		{Name: "updatedAt", Column: "updated_at", Label: "Updated At", Type: domain.FieldTypeDateTime, ReadOnly: true},
	}
	return append(base, fields...)
}

// Schemas retorna os schemas de todas as entidades na ordem de registro.
func Schemas() []domain.EntitySchema {
	return []domain.EntitySchema{AddressSchema, CustomerSchema, OrderSchema, ProductSchema}
}
