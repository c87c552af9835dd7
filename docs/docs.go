// Package docs registers the Swagger document served under /swagger/.
// Keep it in step with the @Router annotations in internal/handler.
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
        "/wallet/accounts": {
            "get": {
                "description": "GET lists HD accounts, POST derives and saves the next account",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "List or add accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AccountsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "description": "GET lists HD accounts, POST derives and saves the next account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "List or add accounts",
                "parameters": [
                    {
                        "description": "Account label (POST)",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/model.AddAccountRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AccountsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/accounts/address": {
            "get": {
                "description": "Returns the address at the account's current receive or change index",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Account address",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Account index (default 0)",
                        "name": "index",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "receive (default) or change",
                        "name": "chain",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AddressResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/accounts/qr": {
            "get": {
                "description": "Returns the account extended public key and its QR code as base64 PNG",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Account xpub QR code",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Account index (default 0)",
                        "name": "index",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AccountQRResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/create": {
            "post": {
                "description": "Creates a new HD wallet with one account and inserts it on the wallet server",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Create new wallet",
                "parameters": [
                    {
                        "description": "Default account label",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/model.CreateWalletRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CreateWalletResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/double-encryption": {
            "post": {
                "description": "Encrypts the seed and private keys under a second password and saves the wallet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Enable double encryption",
                "parameters": [
                    {
                        "description": "New second password",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SecondPasswordRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatusResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/load": {
            "post": {
                "description": "Fetches and decrypts the wallet from the wallet server",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Load wallet",
                "parameters": [
                    {
                        "description": "Wallet identifiers",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.LoadWalletRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/mnemonic": {
            "get": {
                "description": "Returns the mnemonic of a double encrypted wallet, requires an unlocked second password",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Recovery phrase",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MnemonicResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/second-password": {
            "post": {
                "description": "Validates the second password and keeps it for the next account derivation",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Unlock second password",
                "parameters": [
                    {
                        "description": "Second password",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SecondPasswordRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatusResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/sync": {
            "post": {
                "description": "Saves the wallet if it changed since the last acknowledged save",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Save wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatusResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/wipe": {
            "post": {
                "description": "Discards the wallet and every password held in memory",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.AccountQRResponse": {
            "type": "object",
            "properties": {
                "QR": {"type": "string"},
                "xpub": {"type": "string"}
            }
        },
        "model.AddressResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "chain": {"type": "string"},
                "index": {"type": "integer"}
            }
        },
        "model.AccountResponse": {
            "type": "object",
            "properties": {
                "archived": {"type": "boolean"},
                "changeIndex": {"type": "integer"},
                "index": {"type": "integer"},
                "label": {"type": "string"},
                "receiveIndex": {"type": "integer"},
                "xpub": {"type": "string"}
            }
        },
        "model.AccountsResponse": {
            "type": "object",
            "properties": {
                "accounts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/model.AccountResponse"}
                },
                "doubleEncrypted": {"type": "boolean"},
                "guid": {"type": "string"}
            }
        },
        "model.AddAccountRequest": {
            "type": "object",
            "required": ["label"],
            "properties": {
                "label": {"type": "string"}
            }
        },
        "model.CreateWalletRequest": {
            "type": "object",
            "properties": {
                "label": {"type": "string"}
            }
        },
        "model.CreateWalletResponse": {
            "type": "object",
            "properties": {
                "guid": {"type": "string"},
                "message": {"type": "string"},
                "sharedKey": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.LoadWalletRequest": {
            "type": "object",
            "required": ["guid", "sharedKey"],
            "properties": {
                "guid": {"type": "string"},
                "sharedKey": {"type": "string"}
            }
        },
        "model.MnemonicResponse": {
            "type": "object",
            "properties": {
                "words": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "model.SecondPasswordRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "model.StatusResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wallet Sync API",
	Description:      "Encrypted HD wallet payload synchronization",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
