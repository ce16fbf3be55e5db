// Package docs registers the quill OpenAPI 2.0 document with swag so
// gofiber/swagger can serve it at /api/swagger.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SignupInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AuthResult"}},
                    "422": {"description": "Invalid input or username/email taken", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuthResult"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Revoke the current token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/posts": {
            "get": {
                "tags": ["posts"],
                "summary": "List published posts, newest publication first",
                "produces": ["application/json"],
                "parameters": [{"in": "query", "name": "page", "type": "integer", "minimum": 1}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PostPage"}}
                }
            },
            "post": {
                "tags": ["posts"],
                "summary": "Create a post owned by the caller",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/PostInput"}}],
                "responses": {
                    "303": {"description": "See Other; Location is the new post", "schema": {"$ref": "#/definitions/PostMessage"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/posts/create": {
            "get": {
                "tags": ["posts"],
                "summary": "Create form descriptor",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/{id}": {
            "get": {
                "tags": ["posts"],
                "summary": "Read a published post",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}},
                    "404": {"description": "Missing or not published", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["posts"],
                "summary": "Update supplied fields of an owned post",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/PostInput"}}
                ],
                "responses": {
                    "303": {"description": "See Other; Location is the post", "schema": {"$ref": "#/definitions/PostMessage"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Missing", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "patch": {
                "tags": ["posts"],
                "summary": "Same as PUT",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/PostInput"}}
                ],
                "responses": {
                    "303": {"description": "See Other", "schema": {"$ref": "#/definitions/PostMessage"}}
                }
            },
            "delete": {
                "tags": ["posts"],
                "summary": "Soft-delete an owned post",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "303": {"description": "See Other; Location is the post list"},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Missing", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/edit": {
            "get": {
                "tags": ["posts"],
                "summary": "Edit form with the post in any state, owner only",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/ws/posts": {
            "get": {
                "tags": ["posts"],
                "summary": "Websocket feed of post events; a token adds the caller's hidden posts",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"$ref": "#/definitions/PostEvent"}},
                    "426": {"description": "Upgrade Required"}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Post": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "is_draft": {"type": "boolean"},
                "published_at": {"type": "string", "format": "date-time", "x-nullable": true},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "user": {"$ref": "#/definitions/User"}
            }
        },
        "PostInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "content": {"type": "string", "maxLength": 50000},
                "is_draft": {"type": "boolean"},
                "published_at": {"type": "string", "format": "date-time", "x-nullable": true}
            }
        },
        "PostPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Post"}},
                "current_page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "last_page": {"type": "integer"}
            }
        },
        "PostMessage": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "post": {"$ref": "#/definitions/Post"}
            }
        },
        "PostEvent": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["post_created", "post_updated", "post_deleted"]},
                "post_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "visible": {"type": "boolean"},
                "occurred_at": {"type": "string", "format": "date-time"}
            }
        },
        "SignupInput": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AuthResult": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/User"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Quill API",
	Description:      "Blog posts with scheduled publication and owner-only editing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
