// Package docs holds the swagger description of the bank-web API served under /api/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "DucCV"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Exchanges CPF and password for tokens kept in the server side session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ResponseData"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            }
        },
        "/theft-reports": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Theft"],
                "summary": "Report a theft",
                "parameters": [
                    {
                        "description": "Report",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.TheftReport"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            }
        },
        "/client/overview": {
            "get": {
                "description": "User, card and document statuses, unread notifications and the one-shot dialog markers",
                "produces": ["application/json"],
                "tags": ["Client"],
                "summary": "Client dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            }
        },
        "/payments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Payments"],
                "summary": "Wallet, credit limit and payment history",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Payments"],
                "summary": "Transfer money by PIX or credit card",
                "parameters": [
                    {
                        "description": "Payment",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.PaymentRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            }
        },
        "/admin/documents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Card documents awaiting review",
                "parameters": [
                    {"type": "string", "description": "ETag of a previous response", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ResponseData"}},
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ResponseData"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns status 200 if the service is running",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "cpf": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.TheftReport": {
            "type": "object",
            "properties": {
                "amountLost": {"type": "number"},
                "dateOfTheft": {"type": "string"},
                "description": {"type": "string"},
                "locationOfTheft": {"type": "string"},
                "timeOfTheft": {"type": "string"},
                "transactionId": {"type": "string"}
            }
        },
        "model.PaymentRequest": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "money": {"type": "number"},
                "pixOrCredit": {"type": "string", "enum": ["PIX", "CREDIT"]}
            }
        },
        "response.ResponseData": {
            "type": "object",
            "properties": {
                "data": {},
                "ec": {"type": "integer"},
                "error": {"type": "string"},
                "msg": {"type": "string"},
                "total": {"type": "integer"}
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
	Title:            "BANK WEB APIs",
	Description:      "Backend-for-frontend of the bank web client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
