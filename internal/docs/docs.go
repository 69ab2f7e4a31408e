// Package docs registers the OpenAPI description served at /swagger.
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Create a customer account", "responses": {"201": {"description": "Created"}, "409": {"description": "User already exists"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in and receive a bearer token", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid email or password"}}}
        },
        "/auth/me": {
            "get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "description": "Case-insensitive name search"},
                    {"type": "string", "name": "category", "in": "query", "description": "Category id or name"},
                    {"type": "number", "name": "min", "in": "query"},
                    {"type": "number", "name": "max", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {"tags": ["products"], "summary": "Create a product", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "403": {"description": "Not authorized as admin"}}}
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}},
            "put": {"tags": ["products"], "summary": "Update a product", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["products"], "summary": "Delete a product", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create a category", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Category already exists"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "Get a category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["categories"], "summary": "Delete an unused category", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Category in use"}}}
        },
        "/cart": {
            "get": {"tags": ["cart"], "summary": "Current cart with total", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/cart/add": {
            "post": {"tags": ["cart"], "summary": "Add a product to the cart", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/cart/update": {
            "put": {"tags": ["cart"], "summary": "Set a line quantity", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/cart/remove": {
            "delete": {"tags": ["cart"], "summary": "Remove a product from the cart", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "productId", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/cart/clear": {
            "delete": {"tags": ["cart"], "summary": "Empty the cart", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/orders": {
            "get": {"tags": ["orders"], "summary": "All orders, newest first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["orders"], "summary": "Place an order", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}, "404": {"description": "Product not found"}}}
        },
        "/orders/my-orders": {
            "get": {"tags": ["orders"], "summary": "Orders of the current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}/status": {
            "put": {"tags": ["orders"], "summary": "Set order status", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/coupons": {
            "get": {"tags": ["coupons"], "summary": "Active coupons", "parameters": [{"type": "boolean", "name": "all", "in": "query", "description": "Admins only: include inactive"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["coupons"], "summary": "Create a coupon", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/coupons/apply": {
            "post": {"tags": ["coupons"], "summary": "Preview a coupon against a subtotal", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid coupon"}}}
        },
        "/coupons/{id}": {
            "delete": {"tags": ["coupons"], "summary": "Delete a coupon", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/testimonials": {
            "get": {"tags": ["testimonials"], "summary": "Approved testimonials", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["testimonials"], "summary": "Submit a testimonial for moderation", "responses": {"201": {"description": "Created"}}}
        },
        "/testimonials/admin": {
            "get": {
                "tags": ["testimonials"],
                "summary": "Moderation queue with counts",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "status", "in": "query", "enum": ["all", "pending", "approved", "rejected"]},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/testimonials/{id}/status": {
            "put": {"tags": ["testimonials"], "summary": "Approve, reject or reset a testimonial", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/payment/create": {
            "post": {"tags": ["payment"], "summary": "Create a payment intent for an online order", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "503": {"description": "Payments not configured"}}}
        },
        "/payment/verify": {
            "post": {"tags": ["payment"], "summary": "Refresh the payment status from the gateway", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/payment/refund": {
            "post": {"tags": ["payment"], "summary": "Refund a paid order", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/upload": {
            "post": {"tags": ["media"], "summary": "Upload product images", "consumes": ["multipart/form-data"], "security": [{"BearerAuth": []}], "parameters": [{"type": "file", "name": "images", "in": "formData", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/stats": {
            "get": {"tags": ["admin"], "summary": "Dashboard counters", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Shaivyah Storefront API",
	Description:      "Catalog, cart, checkout and moderation API for the Shaivyah clothing store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
