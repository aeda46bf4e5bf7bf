// Package docs is generated by swag from the handler annotations.
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
		"/seeds": {
			"get": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"garden"
				],
				"summary": "List seeds",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.SeedListResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/players/{player}/plots/{plotID}": {
			"get": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"garden"
				],
				"summary": "Get plot",
				"parameters": [
					{
						"type": "string",
						"description": "player",
						"name": "player",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "plotID",
						"name": "plotID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.PlotView"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/players/{player}/inventory": {
			"get": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"garden"
				],
				"summary": "Get inventory",
				"parameters": [
					{
						"type": "string",
						"description": "player",
						"name": "player",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.InventoryResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/players/{player}/balances": {
			"get": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"garden"
				],
				"summary": "Get token balances",
				"parameters": [
					{
						"type": "string",
						"description": "player",
						"name": "player",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.BalanceResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/cache/seeds": {
			"delete": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Purge the seed config cache",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.CachePurgeResponse"
						}
					}
				}
			}
		},
		"/players/{player}/plots/{plotID}/cells/{cell}/history": {
			"get": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"history"
				],
				"summary": "Cell history",
				"parameters": [
					{
						"type": "string",
						"description": "player",
						"name": "player",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "plotID",
						"name": "plotID",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "cell",
						"name": "cell",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.CellHistoryResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/plots/click": {
			"post": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"garden"
				],
				"summary": "Resolve click",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ClickRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.ActionPlan"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
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
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/shop/buy": {
			"post": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"shop"
				],
				"summary": "Quote seed purchase",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.TradeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.TradeQuote"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/shop/sell": {
			"post": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"shop"
				],
				"summary": "Quote crop sale",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.TradeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.TradeQuote"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/watch": {
			"get": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"watch"
				],
				"summary": "List watched plots",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.WatchListResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"watch"
				],
				"summary": "Watch a plot",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.WatchRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.DataResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"watch"
				],
				"summary": "Stop watching a plot",
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.WatchRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.SuccessResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		}
	},
	"definitions": {
		"handler.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.SuccessResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handler.DataResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"data": {}
			}
		},
		"handler.ClickRequest": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"plot_id": {
					"type": "integer"
				},
				"cell_index": {
					"type": "integer"
				},
				"seed_type": {
					"type": "integer"
				}
			},
			"required": [
				"player"
			]
		},
		"handler.TradeRequest": {
			"type": "object",
			"properties": {
				"seed_type": {
					"type": "integer"
				},
				"quantity": {
					"type": "integer",
					"minimum": 1,
					"maximum": 1000000
				}
			},
			"required": [
				"seed_type",
				"quantity"
			]
		},
		"handler.WatchRequest": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"plot_id": {
					"type": "integer"
				}
			},
			"required": [
				"player"
			]
		},
		"handler.WatchListResponse": {
			"type": "object",
			"properties": {
				"targets": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.WatchTarget"
					}
				}
			}
		},
		"handler.SeedListResponse": {
			"type": "object",
			"properties": {
				"seeds": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.SeedConfig"
					}
				}
			}
		},
		"handler.InventoryResponse": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"entries": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.InventoryEntry"
					}
				}
			}
		},
		"handler.CellHistoryResponse": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"plot_id": {
					"type": "integer"
				},
				"cell_index": {
					"type": "integer"
				},
				"snapshots": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.PlotSnapshot"
					}
				}
			}
		},
		"handler.BalanceResponse": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"token": {
					"$ref": "#/definitions/domain.TokenBalance"
				}
			}
		},
		"handler.CachePurgeResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"purged": {
					"type": "integer"
				}
			}
		},
		"domain.TokenBalance": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"raw": {
					"type": "integer"
				},
				"decimals": {
					"type": "integer"
				},
				"formatted": {
					"type": "string"
				}
			}
		},
		"domain.WatchTarget": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"plot_id": {
					"type": "integer"
				}
			}
		},
		"domain.SeedConfig": {
			"type": "object",
			"properties": {
				"type": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"grow_duration": {
					"type": "integer"
				},
				"seed_token_id": {
					"type": "integer"
				},
				"crop_token_id": {
					"type": "integer"
				},
				"buy_price_wei": {
					"type": "integer"
				},
				"sell_price_wei": {
					"type": "integer"
				},
				"active": {
					"type": "boolean"
				}
			}
		},
		"domain.InventoryEntry": {
			"type": "object",
			"properties": {
				"seed_type": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"seed_balance": {
					"type": "integer"
				},
				"crop_balance": {
					"type": "integer"
				}
			}
		},
		"domain.PlotSnapshot": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"plot_id": {
					"type": "integer"
				},
				"cell_index": {
					"type": "integer"
				},
				"packed": {
					"type": "string"
				},
				"status": {
					"type": "integer"
				},
				"seed_type": {
					"type": "integer"
				},
				"planted_at": {
					"type": "integer"
				},
				"grow_duration": {
					"type": "integer"
				},
				"observed_at": {
					"type": "string"
				}
			}
		},
		"domain.PlotView": {
			"type": "object",
			"properties": {
				"player": {
					"type": "string"
				},
				"plot_id": {
					"type": "integer"
				},
				"observed_at": {
					"type": "string"
				},
				"clock_basis": {
					"type": "string"
				},
				"cells": {
					"type": "array",
					"items": {
						"type": "object"
					}
				}
			}
		},
		"domain.ActionPlan": {
			"type": "object",
			"properties": {
				"action": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				},
				"cell": {
					"type": "object"
				},
				"call": {
					"type": "object"
				},
				"ready_in_seconds": {
					"type": "integer"
				}
			}
		},
		"domain.TradeQuote": {
			"type": "object",
			"properties": {
				"seed_type": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"unit_wei": {
					"type": "integer"
				},
				"total_wei": {
					"type": "integer"
				},
				"call": {
					"type": "object"
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
	Title:            "Garden Keeper API",
	Description:      "Reads on-chain garden plots, resolves clicks into contract calls and streams cell transitions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
