// Package docs registra el documento OpenAPI servido en /swagger/*.
// Está escrito a mano a partir de las anotaciones @Router de los handlers de identities e insights;
// si cambia un handler hay que actualizarlo acá (router_test verifica que estén todas las rutas).
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
        "/auth-test": {
            "get": {
                "description": "Devuelve la identidad resuelta desde el token (cookie jwt o Authorization: Bearer). No exige rol.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Probar autenticación",
                "parameters": [
                    {"type": "string", "description": "Bearer token (si no viene la cookie jwt)", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/identities.authTestResponse"}},
                    "401": {"description": "Unauthorized / Token expired", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/ask_question": {
            "post": {
                "description": "Responde una pregunta sobre la historia clínica del usuario autenticado. Requiere rol staff.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Preguntar sobre la historia clínica",
                "parameters": [
                    {"type": "string", "description": "Bearer token (si no viene la cookie jwt)", "name": "Authorization", "in": "header"},
                    {"description": "Pregunta", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/insights.questionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/insights.answerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/vaccinationrelated": {
            "post": {
                "description": "Responde una pregunta sobre el historial de vacunación del usuario autenticado. Requiere rol staff.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Preguntar sobre vacunas",
                "parameters": [
                    {"type": "string", "description": "Bearer token (si no viene la cookie jwt)", "name": "Authorization", "in": "header"},
                    {"description": "Pregunta", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/insights.questionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/insights.answerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/doctor_insights": {
            "post": {
                "description": "Responde usando turnos libres, próximos turnos y tratamientos del doctor autenticado. Requiere rol doctor.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Insights para el doctor",
                "parameters": [
                    {"type": "string", "description": "Bearer token (si no viene la cookie jwt)", "name": "Authorization", "in": "header"},
                    {"description": "Pregunta", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/insights.questionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/insights.answerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Doctor not found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/disease_prediction": {
            "post": {
                "description": "Devuelve posibles condiciones para una lista de síntomas. No requiere autenticación.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Predicción por síntomas",
                "parameters": [
                    {"description": "Síntomas", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/insights.symptomsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/insights.predictionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "message": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "identities.authTestResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "insights.questionRequest": {
            "type": "object",
            "properties": {"question": {"type": "string"}}
        },
        "insights.symptomsRequest": {
            "type": "object",
            "properties": {"symptoms": {"type": "array", "items": {"type": "string"}}}
        },
        "insights.answerResponse": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "insights.predictionResponse": {
            "type": "object",
            "properties": {
                "prediction": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "health-insights API",
	Description:      "Consultas en lenguaje natural sobre historias clínicas, vacunas y agenda de doctores.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
