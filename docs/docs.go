// Package docs holds the OpenAPI description served at /swagger/.
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
    "paths": {
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every experience with its organiser and attendees, ordered by date.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List all experiences",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExperienceListSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "The authenticated organiser becomes the owner. An organiser can hold at most one experience per UTC calendar day.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an experience",
                "parameters": [
                    {"description": "Experience data", "name": "experience", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateExperienceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.ExperienceSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/organiser/{organiserId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Only the organiser themself may list their experiences.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List the experiences of an organiser",
                "parameters": [
                    {"type": "integer", "description": "Organiser user ID", "name": "organiserId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExperienceListSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an experience by ID",
                "parameters": [
                    {"type": "integer", "description": "Experience ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExperienceSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and database readiness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/trips": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "List all trips",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TripListSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/trips/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Get a trip by ID",
                "parameters": [
                    {"type": "integer", "description": "Trip ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TripSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "description": "Authenticate with email and password. Returns a JWT plus the user's id, names and role (ORGANISER or CLIENT).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.LoginSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "429": {"description": "error.code: too_many_requests", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/users/signup": {
            "post": {
                "description": "Create a user account. The password is stored hashed. A welcome email is sent on a best-effort basis.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Sign up a new user",
                "parameters": [
                    {"description": "Sign-up data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created user", "schema": {"$ref": "#/definitions/controllers.SignUpSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "429": {"description": "error.code: too_many_requests", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.CreateExperienceRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "controllers.ExperienceListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Experience"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ExperienceSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Experience"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controllers.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.AuthenticationResult"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.SignUpRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "isOrganiser": {"type": "boolean"},
                "lastName": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controllers.SignUpSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.User"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.TripListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Trip"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.TripSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Trip"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.AuthenticationResult": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "id": {"type": "integer"},
                "lastName": {"type": "string"},
                "role": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "domain.Experience": {
            "type": "object",
            "properties": {
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}},
                "createdAt": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "location": {"type": "string"},
                "name": {"type": "string"},
                "organiser": {"$ref": "#/definitions/domain.User"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Trip": {
            "type": "object",
            "properties": {
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "destination": {"type": "string"},
                "endDate": {"type": "string"},
                "id": {"type": "integer"},
                "organiser": {"$ref": "#/definitions/domain.User"},
                "startDate": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "id": {"type": "integer"},
                "isOrganiser": {"type": "boolean"},
                "lastName": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Holiday Planner API",
	Description:      "Experiences and holiday trips published by organisers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
