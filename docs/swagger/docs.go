// Package swagger registers the OpenAPI document served under /swagger.
//
// The document mirrors the @Summary/@Router annotations on the feature
// handlers and is maintained by hand alongside them.
package swagger

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
        "/integrity": {
            "get": {
                "description": "Performs all available integrity checks (Manifest, Shell, Stale, Server).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run All Integrity Checks",
                "responses": {
                    "200": {
                        "description": "Combined Report",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/integrity/manifest": {
            "get": {
                "description": "Reports paths added, removed or changed between the persisted manifest and the served build.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Persisted Manifest",
                "responses": {
                    "200": {
                        "description": "Manifest Report",
                        "schema": {"$ref": "#/definitions/checks.ManifestReport"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/integrity/server": {
            "get": {
                "description": "Checks if the cache database schema matches the expected models.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Server Schema",
                "responses": {
                    "200": {
                        "description": "Server Check Report",
                        "schema": {"$ref": "#/definitions/checks.ServerReport"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/integrity/shell": {
            "get": {
                "description": "Checks that every shell path has an ok entry in the content cache. Optionally refetches missing paths.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Shell",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Refetch missing shell paths",
                        "name": "fix",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Shell Report",
                        "schema": {"type": "object", "additionalProperties": true}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/integrity/stale": {
            "get": {
                "description": "Dry-runs reconciliation of the content cache against the served build. Nothing is deleted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Stale Entries",
                "responses": {
                    "200": {
                        "description": "Reconciliation Plan",
                        "schema": {"$ref": "#/definitions/reconcile.Plan"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/resources/{path}": {
            "get": {
                "description": "Get the manifest, cache and staleness report for a resource path. An empty path denotes the document root.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get Resource Detail",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Resource path (e.g. 'main.dart.js')",
                        "name": "path",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resource Detail",
                        "schema": {"$ref": "#/definitions/models.ResourceDetailReport"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/sync/activate": {
            "post": {
                "description": "Reconciles the content cache with the installed build and claims reads.",
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Activate Build",
                "responses": {
                    "200": {
                        "description": "Activation Result",
                        "schema": {"$ref": "#/definitions/synchronizer.ActivationResult"}
                    },
                    "409": {
                        "description": "Invalid State",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Rolled Back",
                        "schema": {"$ref": "#/definitions/synchronizer.ActivationResult"}
                    }
                }
            }
        },
        "/sync/install": {
            "post": {
                "description": "Fetches every shell path of the candidate build into the staging cache.",
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Install Build",
                "responses": {
                    "200": {
                        "description": "Lifecycle Snapshot",
                        "schema": {"$ref": "#/definitions/synchronizer.Snapshot"}
                    },
                    "409": {
                        "description": "Invalid State",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/sync/message": {
            "post": {
                "description": "Sends skipWaiting or downloadOffline to the synchronizer.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Send Message",
                "parameters": [
                    {
                        "description": "Message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/synchronizer.MessageRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Message Result",
                        "schema": {"$ref": "#/definitions/synchronizer.MessageResult"}
                    },
                    "400": {
                        "description": "Unknown Message",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/sync/status": {
            "get": {
                "description": "Returns the lifecycle state, the active and candidate build versions and whether reads are claimed.",
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Get Sync Status",
                "responses": {
                    "200": {
                        "description": "Lifecycle Snapshot",
                        "schema": {"$ref": "#/definitions/synchronizer.Snapshot"}
                    }
                }
            }
        },
        "/sync/update": {
            "post": {
                "description": "Installs the candidate build and activates it unless it has to wait.",
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Update",
                "responses": {
                    "200": {
                        "description": "Update Result",
                        "schema": {"type": "object", "additionalProperties": true}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "checks.ManifestReport": {
            "type": "object",
            "properties": {
                "added": {"type": "array", "items": {"type": "string"}},
                "changed": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"},
                "matched": {"type": "boolean"},
                "present": {"type": "boolean"},
                "removed": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "checks.ServerReport": {
            "type": "object",
            "properties": {
                "driver": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "matched": {"type": "boolean"},
                "tables": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/checks.TableReport"}
                }
            }
        },
        "checks.TableReport": {
            "type": "object",
            "properties": {
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "type_mismatches": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.ResourceDetailReport": {
            "type": "object",
            "properties": {
                "cache_url": {"type": "string"},
                "cached": {"type": "boolean"},
                "cached_size": {"type": "integer"},
                "cached_status": {"type": "integer"},
                "content_type": {"type": "string"},
                "fingerprint": {"type": "string"},
                "in_manifest": {"type": "boolean"},
                "in_shell": {"type": "boolean"},
                "integrity_status": {"type": "string"},
                "issues": {"type": "array", "items": {"type": "string"}},
                "key": {"type": "string"},
                "persisted_fingerprint": {"type": "string"},
                "stale": {"type": "boolean"},
                "stored_at": {"type": "string"}
            }
        },
        "reconcile.Action": {
            "type": "object",
            "properties": {
                "cache_key": {"type": "string"},
                "key": {"type": "string"},
                "reason": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "reconcile.Plan": {
            "type": "object",
            "properties": {
                "actions": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Action"}},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"}
            }
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "changed": {"type": "integer"},
                "evicted": {"type": "integer"},
                "overwritten": {"type": "integer"},
                "promoted": {"type": "integer"},
                "removed": {"type": "integer"},
                "retained": {"type": "integer"},
                "total_entries": {"type": "integer"}
            }
        },
        "synchronizer.ActivationResult": {
            "type": "object",
            "properties": {
                "branch": {"type": "string"},
                "error": {"type": "string"},
                "outcome": {"type": "string"},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"},
                "version": {"type": "string"}
            }
        },
        "synchronizer.MessageRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "enum": ["skipWaiting", "downloadOffline"]}
            }
        },
        "synchronizer.MessageResult": {
            "type": "object",
            "properties": {
                "activation": {"$ref": "#/definitions/synchronizer.ActivationResult"},
                "downloaded": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "synchronizer.Snapshot": {
            "type": "object",
            "properties": {
                "active_resources": {"type": "integer"},
                "active_version": {"type": "string"},
                "candidate_version": {"type": "string"},
                "claimed": {"type": "boolean"},
                "last_error": {"type": "string"},
                "skip_waiting": {"type": "boolean"},
                "state": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Asset Sync API",
	Description:      "API for managing the offline cache of a web application bundle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
