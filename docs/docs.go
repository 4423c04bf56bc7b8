// Package docs registers the OpenAPI document served under /docs. It
// mirrors the swag annotations on the fiber handlers; regenerate it with
// `go generate ./cmd/api` after changing them.
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
        "/activity/cache/invalidate": {
            "post": {
                "description": "The next request reloads the table from the source",
                "produces": ["application/json"],
                "tags": ["Activity"],
                "summary": "Drop the cached activity table",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/internal_activity_adapters_http_fiber.InvalidateResponse"}}
                }
            }
        },
        "/charts/{name}": {
            "get": {
                "description": "Renders one chart of the catalogue as PNG",
                "produces": ["image/png"],
                "tags": ["Metrics"],
                "summary": "Render a dashboard chart",
                "parameters": [
                    {"type": "string", "description": "Chart name, e.g. events_by_day", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "description": "Returns the KPIs and every chart whose columns are present, for the given filters",
                "produces": ["application/json"],
                "tags": ["Metrics"],
                "summary": "Dashboard view",
                "parameters": [
                    {"type": "string", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Origins", "name": "origin", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Localities", "name": "locality", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Models", "name": "model", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Tags", "name": "tag", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Concepts", "name": "concept", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.DashboardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}}
                }
            }
        },
        "/exports/summary.pdf": {
            "get": {
                "description": "One-page PDF with the KPI totals of the filtered rows",
                "produces": ["application/pdf"],
                "tags": ["Reports"],
                "summary": "Download the summary document",
                "parameters": [
                    {"type": "string", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/internal_reports_adapters_http_fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/internal_reports_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_reports_adapters_http_fiber.ErrorResponse"}}
                }
            }
        },
        "/exports/table.xlsx": {
            "get": {
                "description": "Spreadsheet with every filtered row and all source columns",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["Reports"],
                "summary": "Download the filtered table",
                "parameters": [
                    {"type": "string", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/internal_reports_adapters_http_fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/internal_reports_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_reports_adapters_http_fiber.ErrorResponse"}}
                }
            }
        },
        "/filters": {
            "get": {
                "description": "Returns the date bounds and the distinct values of every filter dimension",
                "produces": ["application/json"],
                "tags": ["Activity"],
                "summary": "List filter options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/internal_activity_adapters_http_fiber.FilterOptionsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/internal_activity_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_activity_adapters_http_fiber.ErrorResponse"}}
                }
            }
        },
        "/geo": {
            "get": {
                "description": "Returns the filtered rows that carry coordinates",
                "produces": ["application/json"],
                "tags": ["Metrics"],
                "summary": "Map points",
                "parameters": [
                    {"type": "string", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.GeoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "description": "Groups the filtered activity rows by a dimension and counts or sums them",
                "produces": ["application/json"],
                "tags": ["Metrics"],
                "summary": "Query one aggregate",
                "parameters": [
                    {"type": "string", "description": "date | hour | origin | locality | model | tag | concept | user_id", "name": "dimension", "in": "query", "required": true},
                    {"type": "string", "description": "count (default) | sum", "name": "op", "in": "query"},
                    {"type": "string", "description": "Numeric field summed when op=sum", "name": "field", "in": "query"},
                    {"type": "integer", "description": "Keep the N largest groups (categorical dimensions)", "name": "top", "in": "query"},
                    {"type": "string", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.AggregateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "internal_activity_adapters_http_fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "load_failed"},
                "message": {"type": "string", "example": "activity source is unavailable"}
            }
        },
        "internal_activity_adapters_http_fiber.FilterOptionsResponse": {
            "description": "Filter options DTO",
            "type": "object",
            "properties": {
                "loaded_at": {"type": "string", "example": "2024-02-01T10:00:00Z"},
                "max_date": {"type": "string", "example": "2024-01-31"},
                "min_date": {"type": "string", "example": "2024-01-01"},
                "rows": {"type": "integer"},
                "values": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "internal_activity_adapters_http_fiber.InvalidateResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "invalidated"}
            }
        },
        "internal_metrics_adapters_http_fiber.AggregateResponse": {
            "description": "Aggregate DTO",
            "type": "object",
            "properties": {
                "dimension": {"type": "string", "example": "date"},
                "field": {"type": "string"},
                "groups": {"type": "array", "items": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.GroupResponse"}},
                "no_data": {"type": "boolean"},
                "op": {"type": "string", "example": "count"},
                "top_n": {"type": "integer"},
                "total": {"type": "number"}
            }
        },
        "internal_metrics_adapters_http_fiber.ChartResponse": {
            "type": "object",
            "properties": {
                "dimension": {"type": "string", "example": "date"},
                "field": {"type": "string"},
                "groups": {"type": "array", "items": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.GroupResponse"}},
                "kind": {"type": "string", "example": "line"},
                "name": {"type": "string", "example": "events_by_day"},
                "no_data": {"type": "boolean"},
                "op": {"type": "string", "example": "count"},
                "title": {"type": "string", "example": "Events per day"},
                "top_n": {"type": "integer"},
                "total": {"type": "number"},
                "x_label": {"type": "string"},
                "y_label": {"type": "string"}
            }
        },
        "internal_metrics_adapters_http_fiber.DashboardResponse": {
            "description": "Dashboard DTO",
            "type": "object",
            "properties": {
                "charts": {"type": "array", "items": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.ChartResponse"}},
                "from": {"type": "string", "example": "2024-01-01"},
                "kpis": {"type": "array", "items": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.KPIResponse"}},
                "row_count": {"type": "integer"},
                "to": {"type": "string", "example": "2024-01-31"}
            }
        },
        "internal_metrics_adapters_http_fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_aggregate"},
                "message": {"type": "string", "example": "invalid dimension: \"latitude\""}
            }
        },
        "internal_metrics_adapters_http_fiber.GeoPointResponse": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "Quito"},
                "lat": {"type": "number", "example": -0.18},
                "lon": {"type": "number", "example": -78.47}
            }
        },
        "internal_metrics_adapters_http_fiber.GeoResponse": {
            "type": "object",
            "properties": {
                "points": {"type": "array", "items": {"$ref": "#/definitions/internal_metrics_adapters_http_fiber.GeoPointResponse"}}
            }
        },
        "internal_metrics_adapters_http_fiber.GroupResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string", "example": "2024-01-01"},
                "value": {"type": "number", "example": 42}
            }
        },
        "internal_metrics_adapters_http_fiber.KPIResponse": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "Total events"},
                "name": {"type": "string", "example": "total_events"},
                "value": {"type": "number", "example": 1250}
            }
        },
        "internal_reports_adapters_http_fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "configuration_error"},
                "message": {"type": "string", "example": "kpi total_app requires field total_app"}
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
	Title:            "Activity Dashboard API",
	Description:      "Filters, aggregates and exports the user activity table.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
