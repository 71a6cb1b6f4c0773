// Package templates ships ready-to-run request snippets for common
// collection, point and cluster operations.
package templates

// Template is a named snippet.
type Template struct {
	Name        string
	Description string
	Category    string
	Snippet     string
}

// Categories returns all template categories in display order.
func Categories() []string {
	return []string{"Collections", "Points", "Search", "Snapshots", "Cluster"}
}

// All returns all built-in templates.
func All() []Template {
	return []Template{
		{
			Name:        "list-collections",
			Description: "List all collections",
			Category:    "Collections",
			Snippet:     "GET /collections",
		},
		{
			Name:        "create-collection",
			Description: "Create a collection with 4-dimensional dot-product vectors",
			Category:    "Collections",
			Snippet: `PUT /collections/{{collection}}
{
  "vectors": {
    "size": 4,
    "distance": "Dot"
  }
}`,
		},
		{
			Name:        "collection-info",
			Description: "Show collection status, config and point count",
			Category:    "Collections",
			Snippet:     "GET /collections/{{collection}}",
		},
		{
			Name:        "delete-collection",
			Description: "Delete a collection and all its points",
			Category:    "Collections",
			Snippet:     "DELETE /collections/{{collection}}",
		},
		{
			Name:        "upsert-points",
			Description: "Insert or update points with payloads",
			Category:    "Points",
			Snippet: `PUT /collections/{{collection}}/points?wait=true
{
  "points": [
    {"id": 1, "vector": [0.05, 0.61, 0.76, 0.74], "payload": {"city": "Berlin"}},
    {"id": 2, "vector": [0.19, 0.81, 0.75, 0.11], "payload": {"city": "London"}}
  ]
}`,
		},
		{
			Name:        "get-point",
			Description: "Fetch a single point by ID",
			Category:    "Points",
			Snippet:     "GET /collections/{{collection}}/points/1",
		},
		{
			Name:        "scroll-points",
			Description: "Page through points with payloads",
			Category:    "Points",
			Snippet: `POST /collections/{{collection}}/points/scroll
{
  "limit": 10,
  "with_payload": true,
  "with_vector": false
}`,
		},
		{
			Name:        "search",
			Description: "Nearest neighbours for a query vector",
			Category:    "Search",
			Snippet: `POST /collections/{{collection}}/points/search
{
  "vector": [0.2, 0.1, 0.9, 0.7],
  "limit": 3
}`,
		},
		{
			Name:        "filtered-search",
			Description: "Nearest neighbours restricted by a payload filter",
			Category:    "Search",
			Snippet: `POST /collections/{{collection}}/points/search
{
  "vector": [0.2, 0.1, 0.9, 0.7],
  "filter": {
    "must": [{"key": "city", "match": {"value": "London"}}]
  },
  "limit": 3,
  "with_payload": true
}`,
		},
		{
			Name:        "list-snapshots",
			Description: "List snapshots of a collection",
			Category:    "Snapshots",
			Snippet:     "GET /collections/{{collection}}/snapshots",
		},
		{
			Name:        "create-snapshot",
			Description: "Take a new snapshot of a collection",
			Category:    "Snapshots",
			Snippet:     "POST /collections/{{collection}}/snapshots",
		},
		{
			Name:        "cluster-status",
			Description: "Show cluster and consensus status",
			Category:    "Cluster",
			Snippet:     "GET /cluster",
		},
		{
			Name:        "telemetry",
			Description: "Show server telemetry",
			Category:    "Cluster",
			Snippet:     "GET /telemetry",
		},
	}
}

// ByCategory returns templates filtered by category.
func ByCategory(category string) []Template {
	var filtered []Template
	for _, t := range All() {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// ByName finds a template by name.
func ByName(name string) *Template {
	for _, t := range All() {
		if t.Name == name {
			return &t
		}
	}
	return nil
}
