// Package docs registra la especificación OpenAPI del servicio en swaggo/swag.
// Se sirve en /docs mediante gofiber/contrib/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"Bearer": []}],
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Liveness", "security": [], "responses": {"200": {"description": "ok"}, "503": {"description": "almacenamiento no disponible"}}}},
        "/api/orders": {
            "post": {"tags": ["orders"], "summary": "Crear orden", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrderRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.OrderMutationResponse"}}, "400": {"description": "VALIDATION", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}, "404": {"description": "PRODUCT_NOT_FOUND | LOCATION_NOT_FOUND", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}, "409": {"description": "INSUFFICIENT_STOCK | INSUFFICIENT_LOCATION_STOCK | CONCURRENT_MODIFICATION", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "get": {"tags": ["orders"], "summary": "Listar órdenes", "parameters": [{"in": "query", "name": "status", "type": "string"}, {"in": "query", "name": "type", "type": "string"}, {"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "offset", "type": "integer"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/orders/{id}": {"get": {"tags": ["orders"], "summary": "Obtener orden", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "ORDER_NOT_FOUND"}}}},
        "/api/orders/{id}/status": {"patch": {"tags": ["orders"], "summary": "Cambiar estado", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateOrderStatusRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderMutationResponse"}}, "409": {"description": "INVALID_TRANSITION"}}}},
        "/api/orders/{id}/slip.pdf": {"get": {"tags": ["orders"], "summary": "Hoja de picking o recepción (PDF)", "produces": ["application/pdf"], "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "PDF", "schema": {"type": "file"}}, "404": {"description": "ORDER_NOT_FOUND"}, "409": {"description": "CONFLICT"}}}},
        "/api/stock/transfers": {"post": {"tags": ["stock"], "summary": "Trasladar entre ubicaciones", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TransferRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "VALIDATION"}, "409": {"description": "INSUFFICIENT_LOCATION_STOCK | CAPACITY_EXCEEDED"}}}},
        "/api/stock/adjustments": {"post": {"tags": ["stock"], "summary": "Ajustar stock de una ubicación", "description": "ABSOLUTE fija la cantidad y genera un movimiento ADJUSTMENT; IN/OUT suman o restan y generan un movimiento IN u OUT.", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AdjustmentRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "VALIDATION"}, "409": {"description": "INSUFFICIENT_LOCATION_STOCK | CAPACITY_EXCEEDED"}}}},
        "/api/products": {"get": {"tags": ["products"], "summary": "Listar productos", "responses": {"200": {"description": "OK"}}}},
        "/api/products/{id}": {
            "get": {"tags": ["products"], "summary": "Obtener producto", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "PRODUCT_NOT_FOUND"}}},
            "delete": {"tags": ["products"], "summary": "Eliminar o desactivar producto", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "CONFLICT"}}}
        },
        "/api/products/{id}/locations": {"get": {"tags": ["products"], "summary": "Cantidades por ubicación", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/products/{id}/movements": {"get": {"tags": ["products"], "summary": "Libro de movimientos", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "query", "name": "from", "type": "string"}, {"in": "query", "name": "to", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/products/{id}/reconcile": {"get": {"tags": ["products"], "summary": "Reconciliar contra el libro", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/locations": {
            "post": {"tags": ["locations"], "summary": "Crear ubicación", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateLocationRequest"}}], "responses": {"201": {"description": "Created"}, "409": {"description": "DUPLICATE"}}},
            "get": {"tags": ["locations"], "summary": "Listar ubicaciones", "responses": {"200": {"description": "OK"}}}
        },
        "/api/locations/{id}": {
            "get": {"tags": ["locations"], "summary": "Obtener ubicación", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["locations"], "summary": "Eliminar ubicación vacía", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "409": {"description": "LOCATION_NOT_EMPTY | CONFLICT"}}}
        },
        "/api/locations/{id}/stock": {"get": {"tags": ["locations"], "summary": "Stock en la ubicación", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/inventory/replenishment-list": {"get": {"tags": ["inventory"], "summary": "Lista de reposición", "responses": {"200": {"description": "OK"}}}},
        "/api/dashboard/stock-summary": {"get": {"tags": ["dashboard"], "summary": "Resumen de stock", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "dto.OrderItemRequest": {"type": "object", "properties": {"product_id": {"type": "string"}, "quantity": {"type": "integer"}, "unit_price": {"type": "string"}, "location_id": {"type": "string"}}},
        "dto.CreateOrderRequest": {"type": "object", "properties": {"type": {"type": "string", "enum": ["INBOUND", "OUTBOUND"]}, "supplier_id": {"type": "string"}, "notes": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/dto.OrderItemRequest"}}}},
        "dto.UpdateOrderStatusRequest": {"type": "object", "properties": {"status": {"type": "string", "enum": ["PROCESSING", "COMPLETED", "CANCELLED"]}}},
        "dto.ProductCounters": {"type": "object", "properties": {"product_id": {"type": "string"}, "current_stock": {"type": "integer"}, "reserved_stock": {"type": "integer"}}},
        "dto.OrderMutationResponse": {"type": "object", "properties": {"order": {"type": "object"}, "products": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductCounters"}}, "movement_ids": {"type": "array", "items": {"type": "string"}}}},
        "dto.TransferRequest": {"type": "object", "properties": {"product_id": {"type": "string"}, "from_location_id": {"type": "string"}, "to_location_id": {"type": "string"}, "quantity": {"type": "integer"}, "notes": {"type": "string"}}},
        "dto.AdjustmentRequest": {"type": "object", "properties": {"product_id": {"type": "string"}, "location_id": {"type": "string"}, "mode": {"type": "string", "enum": ["ABSOLUTE", "IN", "OUT"]}, "quantity": {"type": "integer"}, "notes": {"type": "string"}}},
        "dto.CreateLocationRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "type": {"type": "string"}, "capacity": {"type": "integer"}, "is_default": {"type": "boolean"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Warely Stock API",
	Description:      "Libro de movimientos de stock por ubicación y máquina de estados de órdenes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
