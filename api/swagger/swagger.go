package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Rubricas API",
        "description": "AI-assisted educational rubric generation service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Rubrics", "description": "Rubric generation and saved rubrics"},
        {"name": "Suggestions", "description": "Criterion and aspect suggestions"},
        {"name": "Export", "description": "Rendered rubric downloads"},
        {"name": "Curriculum", "description": "Local curricular reference data"},
        {"name": "Chat", "description": "Pedagogy assistant"}
    ],
    "paths": {
        "/rubrics/generate": {
            "post": {
                "tags": ["Rubrics"],
                "summary": "Generate a rubric from form context",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateRubricRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Generation not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rubrics/suggestions": {
            "post": {
                "tags": ["Suggestions"],
                "summary": "Suggest criteria or weighted aspects for a partial context",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SuggestCriteriaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rubrics/export": {
            "post": {
                "tags": ["Export"],
                "summary": "Render a rubric to csv, pdf or html",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRubricRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rubrics/saved": {
            "get": {
                "tags": ["Rubrics"],
                "summary": "List saved rubrics, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rubrics"],
                "summary": "Save an edited rubric",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveRubricRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rubrics/saved/{id}": {
            "get": {
                "tags": ["Rubrics"],
                "summary": "Get one saved rubric",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rubrics"],
                "summary": "Replace a saved rubric after editing",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveRubricRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Rubrics"],
                "summary": "Delete a saved rubric",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Export"],
                "summary": "Download a rendered export by signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Expired or unknown token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/curriculum": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List official evaluation criteria for a scope",
                "parameters": [
                    {"name": "stage", "in": "query", "required": true, "type": "string"},
                    {"name": "subject", "in": "query", "required": true, "type": "string"},
                    {"name": "course", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/chat": {
            "post": {
                "tags": ["Chat"],
                "summary": "Ask the pedagogy assistant",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "WeightedCriterion": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "weight": {"type": "integer"}
            },
            "required": ["name", "weight"]
        },
        "ScaleHeader": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "score": {"type": "string"}
            }
        },
        "GenerateRubricRequest": {
            "type": "object",
            "properties": {
                "stage": {"type": "string"},
                "course": {"type": "string"},
                "subject": {"type": "string"},
                "evaluation_element": {"type": "string"},
                "performance_levels": {"type": "array", "items": {"type": "string"}},
                "specific_criteria": {"type": "array", "items": {"type": "string"}},
                "evaluation_criteria": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/WeightedCriterion"}
                }
            },
            "required": ["stage", "course", "subject", "evaluation_element", "performance_levels", "specific_criteria", "evaluation_criteria"]
        },
        "SuggestCriteriaRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["specific", "evaluation"]},
                "stage": {"type": "string"},
                "course": {"type": "string"},
                "subject": {"type": "string"},
                "evaluation_element": {"type": "string"},
                "existing": {"type": "array", "items": {"type": "string"}},
                "existing_criteria": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/WeightedCriterion"}
                }
            },
            "required": ["type", "stage", "course", "subject", "evaluation_element"]
        },
        "SaveRubricRequest": {
            "type": "object",
            "properties": {
                "rubric": {"type": "object"},
                "form_data": {"type": "object"}
            },
            "required": ["rubric"]
        },
        "ExportRubricRequest": {
            "type": "object",
            "properties": {
                "rubric": {"type": "object"},
                "format": {"type": "string", "enum": ["csv", "pdf", "html"]}
            },
            "required": ["rubric", "format"]
        },
        "ChatRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            },
            "required": ["message"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
