// Package docs registers the OpenAPI description served on /swagger/*.
// It mirrors the swag annotations on the HTTP handlers.
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
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"], "summary": "Logout", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}}}
            }
        },
        "/marketplace/products": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["products"], "summary": "List products", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "marketplace", "in": "query", "enum": ["AWS", "Azure", "GCP"]},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/productPageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create a product",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/productResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/marketplace/products/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Get a product", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/productResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update a product",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/productResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/offers": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["offers"], "summary": "List offers", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "product", "in": "query"},
                    {"type": "boolean", "name": "active", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/offerPageResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["offers"], "summary": "Create an offer",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createOfferRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/offerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/offers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["offers"], "summary": "Get an offer", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/offerResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["offers"], "summary": "Update an offer",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createOfferRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/offerResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["offers"], "summary": "Delete an offer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create a user (admin)",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/userResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/profile": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get my profile", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/userResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update my profile",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateProfileRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/userResponse"}}}
            }
        },
        "/users/password": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Change my password",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/changePasswordRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}}}
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}
            }
        },
        "messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "loginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "loginResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "registerRequest": {
            "type": "object", "required": ["email", "password", "name"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "name": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "manager", "user"]}}
        },
        "updateProfileRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}}},
        "changePasswordRequest": {
            "type": "object", "required": ["currentPassword", "newPassword"],
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string", "minLength": 8}}
        },
        "userResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}
        },
        "createProductRequest": {
            "type": "object", "required": ["name", "price", "marketplace"],
            "properties": {
                "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number", "minimum": 0},
                "currency": {"type": "string"}, "marketplace": {"type": "string", "enum": ["AWS", "Azure", "GCP"]}, "available": {"type": "boolean"}
            }
        },
        "productResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"},
                "currency": {"type": "string"}, "marketplace": {"type": "string"}, "available": {"type": "boolean"},
                "formattedPrice": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
            }
        },
        "productPageResponse": {
            "type": "object",
            "properties": {
                "products": {"type": "array", "items": {"$ref": "#/definitions/productResponse"}},
                "totalCount": {"type": "integer"}, "currentPage": {"type": "integer"}, "totalPages": {"type": "integer"}
            }
        },
        "createOfferRequest": {
            "type": "object", "required": ["title", "discount", "product", "validFrom", "validTo"],
            "properties": {
                "title": {"type": "string"}, "discount": {"type": "number", "minimum": 0}, "product": {"type": "string"},
                "validFrom": {"type": "string", "format": "date-time"}, "validTo": {"type": "string", "format": "date-time"}, "terms": {"type": "string"}
            }
        },
        "offerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "title": {"type": "string"}, "discount": {"type": "number"}, "product": {"type": "string"},
                "validFrom": {"type": "string"}, "validTo": {"type": "string"}, "terms": {"type": "string"}, "isActive": {"type": "boolean"},
                "productDetails": {"$ref": "#/definitions/productResponse"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
            }
        },
        "offerPageResponse": {
            "type": "object",
            "properties": {
                "offers": {"type": "array", "items": {"$ref": "#/definitions/offerResponse"}},
                "totalCount": {"type": "integer"}, "currentPage": {"type": "integer"}, "totalPages": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cloud Marketplace API",
	Description:      "Users, products and promotional offers for the unified cloud marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
