package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Internship API",
        "description": "Internship lifecycle, inspection reservations, and cohort reporting",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Token issuance"},
        {"name": "Internships", "description": "Internship records and lifecycle"},
        {"name": "Reservations", "description": "Inspection claim protocol"},
        {"name": "Inspections", "description": "Placement inspection history"},
        {"name": "Diary", "description": "Student work diary"},
        {"name": "Sets", "description": "Internship cohorts"},
        {"name": "Summaries", "description": "Cohort oversight reports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue a JWT for valid credentials",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/internships": {
            "get": {
                "tags": ["Internships"],
                "summary": "List internships",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "state", "in": "query", "type": "string"},
                    {"name": "locationId", "in": "query", "type": "string"},
                    {"name": "reserved", "in": "query", "type": "boolean"},
                    {"name": "highlighted", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/internships/{id}": {
            "get": {
                "tags": ["Internships"],
                "summary": "Internship detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/internships/{id}/next-states": {
            "get": {
                "tags": ["Internships"],
                "summary": "States reachable from the internship's current state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/internships/{id}/state": {
            "patch": {
                "tags": ["Internships"],
                "summary": "Request a lifecycle transition",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeStateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Concurrent modification"},
                    "422": {"description": "Transition not allowed"}
                }
            }
        },
        "/internships/{id}/highlighted": {
            "patch": {
                "tags": ["Reservations"],
                "summary": "Toggle the priority flag",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetHighlightedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/internships/{id}/reservation": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Claim inspection ownership",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ClaimRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "409": {"description": "Already reserved"}
                }
            }
        },
        "/reservations/bulk-claim": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Claim every unreserved internship at a location",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkClaimRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/internships/{id}/inspections": {
            "get": {
                "tags": ["Inspections"],
                "summary": "Inspection history",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Inspections"],
                "summary": "Record an inspection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInspectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inspections/{id}": {
            "delete": {
                "tags": ["Inspections"],
                "summary": "Delete an inspection (creator only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Not the creator"}
                }
            }
        },
        "/internships/{id}/diary": {
            "get": {
                "tags": ["Diary"],
                "summary": "Diary entries",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Diary"],
                "summary": "Add a diary entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDiaryEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sets": {
            "get": {
                "tags": ["Sets"],
                "summary": "List cohorts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sets/{id}": {
            "get": {
                "tags": ["Sets"],
                "summary": "Cohort detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/classrooms": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Internships per classroom",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/companies": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Students per company",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/kinds": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Internships per kind",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/inspectors": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Inspections per teacher",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/reservations": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Current reservations per teacher",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/results": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Inspections per result, zero counts included",
                "parameters": [
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/summaries/{report}/export": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Export a report as CSV or PDF",
                "parameters": [
                    {"name": "report", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "setId", "in": "query", "type": "string"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "Internship": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "set_id": {"type": "string"},
                "student_id": {"type": "string"},
                "student_name": {"type": "string"},
                "classroom": {"type": "string"},
                "company_id": {"type": "string"},
                "company_name": {"type": "string"},
                "location_id": {"type": "string"},
                "kind": {"type": "string"},
                "state": {"type": "string"},
                "highlighted": {"type": "boolean"},
                "reservation_user_id": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Inspection": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "internship_id": {"type": "string"},
                "user_id": {"type": "string"},
                "date": {"type": "string"},
                "result": {"type": "string", "enum": ["OK", "PROBLEMS", "STUDENT_ABSENT", "EMPLOYER_UNAWARE", "UNKNOWN"]},
                "note": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ChangeStateRequest": {
            "type": "object",
            "properties": {
                "state": {"type": "string"}
            },
            "required": ["state"]
        },
        "SetHighlightedRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "boolean"}
            },
            "required": ["value"]
        },
        "ClaimRequest": {
            "type": "object",
            "properties": {
                "inspector_id": {"type": "string"}
            }
        },
        "BulkClaimRequest": {
            "type": "object",
            "properties": {
                "location_id": {"type": "string"},
                "inspector_id": {"type": "string"},
                "active_only": {"type": "boolean"}
            },
            "required": ["location_id"]
        },
        "CreateInspectionRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "result": {"type": "string"},
                "note": {"type": "string"}
            },
            "required": ["date", "result"]
        },
        "CreateDiaryEntryRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "text": {"type": "string"}
            },
            "required": ["date", "text"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
