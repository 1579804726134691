package http

import "salus/internal/modkit/swaggerkit"

func init() {
	swaggerkit.Register(describeEvents)
}

// describeEvents documents the batch endpoint in the served openapi spec
func describeEvents(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	paths["/events"] = map[string]any{
		"post": map[string]any{
			"tags":        []any{"Ingest"},
			"summary":     "Accept a batch of client analytics events",
			"description": "Persists the whole batch or none of it. Responses carry no body.",
			"parameters": []any{
				map[string]any{
					"name": "api-key", "in": "header", "required": true,
					"schema": map[string]any{"type": "string"},
				},
				map[string]any{
					"name": "Origin", "in": "header", "required": true,
					"schema": map[string]any{"type": "string"},
				},
				map[string]any{
					"name": "User-Agent", "in": "header", "required": true,
					"schema": map[string]any{"type": "string"},
				},
			},
			"requestBody": map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "object",
								"required": []any{"event_type", "id"},
								"properties": map[string]any{
									"event_type": map[string]any{
										"type": "string",
										"enum": []any{"Visitor", "Session", "Section", "Click"},
									},
									"id": map[string]any{"type": "string", "format": "uuid"},
									"attrs": map[string]any{
										"type":                 "object",
										"additionalProperties": map[string]any{"type": "string"},
									},
								},
							},
						},
					},
				},
			},
			"responses": map[string]any{
				"201": map[string]any{"description": "batch persisted"},
			},
		},
	}
}
