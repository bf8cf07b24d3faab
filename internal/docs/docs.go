// Package docs registers the OpenAPI description served under /swagger.
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
		"/accounts": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Create an account",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateAccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Account exists",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/accounts/{id}": {
			"get": {
				"tags": [
					"accounts"
				],
				"summary": "Get an account",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Account id"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/accounts/{id}/tournaments": {
			"get": {
				"tags": [
					"tournaments"
				],
				"summary": "List the account's current tournament entries",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Account id"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/slots/spin": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Spin the 3-reel slots",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.BetRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/megaslots/spin": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Spin Mega Slots, playing a pending free spin first",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.MegaSpinRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/roulette/spin": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Spin roulette with a set of bets",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.RouletteSpinRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/blackjack/deal": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Deal a blackjack hand",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.BetRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/blackjack/hit": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Draw a card on the open blackjack hand",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/blackjack/stand": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Stand and settle the open blackjack hand",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/poker/deal": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Deal a video poker hand",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.BetRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/poker/draw": {
			"post": {
				"tags": [
					"games"
				],
				"summary": "Draw replacements and settle the poker hand",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.PokerDrawRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/games/rounds/{id}": {
			"get": {
				"tags": [
					"games"
				],
				"summary": "Get the account's open hand",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Account id"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/bonus/daily": {
			"post": {
				"tags": [
					"bonus"
				],
				"summary": "Claim the daily bonus",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/bonus/hourly": {
			"post": {
				"tags": [
					"bonus"
				],
				"summary": "Claim the hourly bonus",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/bonus/cashback": {
			"post": {
				"tags": [
					"bonus"
				],
				"summary": "Claim accrued cashback",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/vip/tiers": {
			"get": {
				"tags": [
					"vip"
				],
				"summary": "List VIP tiers",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/vip/{id}": {
			"get": {
				"tags": [
					"vip"
				],
				"summary": "Get the account's VIP standing",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Account id"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/challenges/{id}": {
			"get": {
				"tags": [
					"vip"
				],
				"summary": "Get challenge progress",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Account id"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/jackpot": {
			"get": {
				"tags": [
					"games"
				],
				"summary": "Get the progressive jackpot pool",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/tournaments": {
			"get": {
				"tags": [
					"tournaments"
				],
				"summary": "List tournaments",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/tournaments/{id}/prizes": {
			"get": {
				"tags": [
					"tournaments"
				],
				"summary": "Get a tournament's prize table",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Tournament id"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/tournaments/{id}/join": {
			"post": {
				"tags": [
					"tournaments"
				],
				"summary": "Pay the entry fee and join the current run",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string",
						"description": "Tournament id"
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AccountRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/billing/packages": {
			"get": {
				"tags": [
					"billing"
				],
				"summary": "List coin packages",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/billing/complete": {
			"post": {
				"tags": [
					"billing"
				],
				"summary": "Credit a completed purchase",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CompletePurchaseRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/events": {
			"get": {
				"tags": [
					"events"
				],
				"summary": "Stream settled events as server-sent events",
				"produces": [
					"text/event-stream"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"definitions": {
		"handler.AccountRequest": {
			"type": "object",
			"required": [
				"account_id"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				}
			}
		},
		"handler.CreateAccountRequest": {
			"type": "object",
			"required": [
				"account_id"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				}
			}
		},
		"handler.BetRequest": {
			"type": "object",
			"required": [
				"account_id",
				"bet"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				},
				"bet": {
					"type": "integer",
					"minimum": 1
				}
			}
		},
		"handler.MegaSpinRequest": {
			"type": "object",
			"required": [
				"account_id"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				},
				"bet": {
					"type": "integer",
					"minimum": 0
				}
			}
		},
		"handler.RouletteBetRequest": {
			"type": "object",
			"required": [
				"type",
				"amount"
			],
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"straight",
						"red",
						"black",
						"even",
						"odd",
						"low",
						"high",
						"first12",
						"second12",
						"third12"
					]
				},
				"number": {
					"type": "integer",
					"minimum": 0,
					"maximum": 36
				},
				"amount": {
					"type": "integer",
					"minimum": 1
				}
			}
		},
		"handler.RouletteSpinRequest": {
			"type": "object",
			"required": [
				"account_id",
				"bets"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				},
				"bets": {
					"type": "array",
					"minItems": 1,
					"maxItems": 20,
					"items": {
						"$ref": "#/definitions/handler.RouletteBetRequest"
					}
				}
			}
		},
		"handler.PokerDrawRequest": {
			"type": "object",
			"required": [
				"account_id",
				"holds"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				},
				"holds": {
					"type": "array",
					"minItems": 5,
					"maxItems": 5,
					"items": {
						"type": "boolean"
					}
				}
			}
		},
		"handler.CompletePurchaseRequest": {
			"type": "object",
			"required": [
				"account_id"
			],
			"properties": {
				"account_id": {
					"type": "string",
					"maxLength": 64
				},
				"package_id": {
					"type": "string",
					"maxLength": 32
				},
				"coins": {
					"type": "integer",
					"minimum": 0
				}
			}
		},
		"handler.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "X-API-Key",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Wreckless Racks API",
	Description:      "Social casino games, VIP progression, tournaments and coin purchases.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
