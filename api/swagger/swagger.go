package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Registro Academico API",
        "description": "Academic records service: students, courses and enrollments",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Estudiantes", "description": "Student management"},
        {"name": "Cursos", "description": "Course catalog"},
        {"name": "Matriculas", "description": "Enrollment operations"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/estudiantes": {
            "get": {
                "tags": ["Estudiantes"],
                "summary": "List students",
                "parameters": [
                    {"name": "semestre", "in": "query", "type": "integer"},
                    {"name": "curso", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Estudiantes"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "409": {"description": "Duplicate cedula"}
                }
            }
        },
        "/estudiantes/{id}": {
            "get": {
                "tags": ["Estudiantes"],
                "summary": "Get student with enrolled courses",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Estudiantes"],
                "summary": "Update student (partial)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "409": {"description": "Duplicate cedula"}
                }
            },
            "delete": {
                "tags": ["Estudiantes"],
                "summary": "Delete student and their enrollments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/estudiantes/{id}/cursos": {
            "get": {
                "tags": ["Estudiantes"],
                "summary": "List a student's enrolled courses",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/estudiantes/{id}/cancelar-semestre": {
            "post": {
                "tags": ["Estudiantes"],
                "summary": "Remove every enrollment of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/estudiantes/{id}/horario": {
            "get": {
                "tags": ["Estudiantes"],
                "summary": "Export a student's schedule as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Schedule document"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/cursos": {
            "get": {
                "tags": ["Cursos"],
                "summary": "List courses",
                "parameters": [
                    {"name": "codigo", "in": "query", "type": "string"},
                    {"name": "creditos", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cursos"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or horario format"},
                    "409": {"description": "Duplicate codigo"}
                }
            }
        },
        "/cursos/{id}": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Get course with enrolled students",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Cursos"],
                "summary": "Update course (partial)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "409": {"description": "Duplicate codigo"}
                }
            },
            "delete": {
                "tags": ["Cursos"],
                "summary": "Delete course and its enrollments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/cursos/{id}/estudiantes": {
            "get": {
                "tags": ["Cursos"],
                "summary": "List a course's enrolled students",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/matriculas": {
            "post": {
                "tags": ["Matriculas"],
                "summary": "Enroll a student into a course",
                "parameters": [
                    {"name": "estudiante_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "curso_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student or course not found"},
                    "409": {"description": "Duplicate, credit limit, schedule conflict or capacity"}
                }
            },
            "delete": {
                "tags": ["Matriculas"],
                "summary": "Withdraw a student from a course",
                "parameters": [
                    {"name": "estudiante_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "curso_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Withdrawn"},
                    "404": {"description": "Enrollment not found"}
                }
            }
        }
    },
    "definitions": {
        "CreateStudentRequest": {
            "type": "object",
            "required": ["cedula", "nombre", "email", "semestre"],
            "properties": {
                "cedula": {"type": "string"},
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "semestre": {"type": "integer"}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "cedula": {"type": "string"},
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "semestre": {"type": "integer"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["codigo", "nombre", "creditos", "horario", "cupo_maximo"],
            "properties": {
                "codigo": {"type": "string"},
                "nombre": {"type": "string"},
                "creditos": {"type": "integer"},
                "horario": {"type": "string", "example": "08:00-10:00"},
                "cupo_maximo": {"type": "integer"}
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "codigo": {"type": "string"},
                "nombre": {"type": "string"},
                "creditos": {"type": "integer"},
                "horario": {"type": "string", "example": "08:00-10:00"},
                "cupo_maximo": {"type": "integer"}
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
                "error": {"$ref": "#/definitions/APIError"}
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
