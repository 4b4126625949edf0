package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `propcatalog serves read-only views over a real-estate project catalog.

Model:
- Project: one listing (id, developer, city, locality, status, starting_price in minor units, possession_date, tags).
- Catalog: an ordered snapshot of projects. Order is meaningful; "trending" is simply the first N.
- Developer summary: projects grouped by developer name in order of first appearance.

Workflow:
1) Call catalog_status. Views are only available when phase is "loaded".
   - "idle"/"loading": wait and retry. "failed": call refresh_catalog.
2) Browse with list_new_launches, list_trending, filter_projects, list_developers, featured_developers.
3) Drill in with get_project (by id) or get_developer (exact name; blank developers are "Unlisted Developer").
4) carousel_config returns everything a client needs to mount a carousel for "new-launches" or "trending".
5) catalog_history, when available, lists recent refresh outcomes newest first.

Docs:
- propcatalog://docs/guide
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "propcatalog://docs/guide",
		Name:        "guide",
		Title:       "propcatalog guide",
		Description: "View semantics, edge cases and error codes.",
		Content: `# propcatalog guide

## Views

| View | Rule |
|------|------|
| New launches | status is exactly "New Launch" (case-sensitive), catalog order kept |
| Trending | first N projects of the catalog (default 8), no tag or score involved |
| Developers | grouped by developer name, first-appearance order; city and next possession come from the first project seen |
| Featured developers | first N developer groups (default 6) |

Empty results are valid: an empty catalog yields empty lists, not errors.

## Carousel

- slides_per_view maps breakpoints (base >= 0px, md >= 768px, lg >= 1024px) to visible slide counts.
- autoplay_delay_ms of 0 disables autoplay.
- Each slide carries a formatted price label and an href to the project.

## Error codes

| Code | Meaning |
|------|---------|
| CATALOG_NOT_LOADED | no snapshot yet; retry after catalog_status reports loaded |
| CATALOG_FETCH_FAILED | last fetch failed; the message carries the cause |
| PROJECT_NOT_FOUND | no project with that id |
| DEVELOPER_NOT_FOUND | no developer with that exact name |
| INVALID_VIEW | carousel view is not new-launches or trending |
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
