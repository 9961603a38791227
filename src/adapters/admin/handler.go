package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"storeadmin/src/domain"
	"storeadmin/src/services/crud"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type Handler struct {
	logger   *slog.Logger
	registry *crud.Registry
	screens  map[string]ShowScreen
	mux      *http.ServeMux
}

func NewHandler(logger *slog.Logger, registry *crud.Registry) *Handler {
	schemas := make(map[string]domain.EntitySchema)
	for _, c := range registry.All() {
		schemas[c.Schema().Name] = c.Schema()
	}

	screens := make(map[string]ShowScreen, len(schemas))
	for name, schema := range schemas {
		screens[name] = NewShowScreen(schema, schemas)
	}

	h := &Handler{
		logger:   logger,
		registry: registry,
		screens:  screens,
		mux:      http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /admin/{$}", h.Index)
	h.mux.HandleFunc("GET /admin/{entity}", h.List)
	h.mux.HandleFunc("GET /admin/{entity}/{id}", h.Show)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) Screen(entity string) (ShowScreen, bool) {
	screen, ok := h.screens[entity]
	return screen, ok
}

type link struct {
	Text string
	Href string
}

type fieldView struct {
	Label string
	Text  string
	Href  string
}

type gridView struct {
	Label   string
	Headers []string
	Rows    [][]fieldView
}

type showView struct {
	Entity string
	Title  string
	Fields []fieldView
	Grids  []gridView
}

type listView struct {
	Entity string
	Plural string
	Items  []link
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var entities []link
	for _, c := range h.registry.All() {
		entities = append(entities, link{Text: c.Schema().Plural, Href: "/admin/" + c.Schema().Name})
	}
	h.render(w, http.StatusOK, "index.html", entities)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.registry.Get(r.PathValue("entity"))
	if !ok {
		h.renderError(w, domain.ErrNotFound)
		return
	}

	records, err := collection.FindMany(r.Context(), domain.FindManyArgs{})
	if err != nil {
		h.renderError(w, err)
		return
	}

	schema := collection.Schema()
	view := listView{Entity: schema.Name, Plural: schema.Plural}
	for _, record := range records {
		values := toMap(record)
		view.Items = append(view.Items, link{
			Text: Title(values, schema.TitleField),
			Href: "/admin/" + schema.Name + "/" + displayValue(values["id"]),
		})
	}

	h.render(w, http.StatusOK, "list.html", view)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.registry.Get(r.PathValue("entity"))
	if !ok {
		h.renderError(w, domain.ErrNotFound)
		return
	}

	id := r.PathValue("id")
	record, err := collection.FindOne(r.Context(), id)
	if err != nil {
		h.renderError(w, err)
		return
	}

	schema := collection.Schema()
	values := toMap(record)
	screen := h.screens[schema.Name]

	view := showView{Entity: schema.Name, Title: Title(values, schema.TitleField)}

	for _, widget := range screen.Widgets {
		if widget.Kind != WidgetReferenceMany {
			view.Fields = append(view.Fields, h.fieldView(r.Context(), widget, values))
			continue
		}

		grid, err := h.gridView(r.Context(), collection, id, widget)
		if err != nil {
			h.renderError(w, err)
			return
		}
		view.Grids = append(view.Grids, grid)
	}

	h.render(w, http.StatusOK, "show.html", view)
}

func (h *Handler) fieldView(ctx context.Context, widget Widget, values map[string]any) fieldView {
	view := fieldView{Label: widget.Label}

	switch widget.Kind {
	case WidgetDate:
		view.Text = formatDate(values[widget.Source])

	case WidgetReference:
		ref, _ := values[widget.Source].(map[string]any)
		id := displayValue(ref["id"])
		if id == "" {
			return view
		}
		view.Text = id
		view.Href = "/admin/" + widget.Reference + "/" + id

		// referência pendente continua exibindo o id
		if target, ok := h.registry.Get(widget.Reference); ok {
			if related, err := target.FindOne(ctx, id); err == nil {
				view.Text = Title(toMap(related), target.Schema().TitleField)
			}
		}

	default:
		view.Text = displayValue(values[widget.Source])
	}

	return view
}

func (h *Handler) gridView(ctx context.Context, owner crud.Collection, id string, widget Widget) (gridView, error) {
	grid := gridView{Label: widget.Label}
	for _, column := range widget.Columns {
		grid.Headers = append(grid.Headers, column.Label)
	}

	related, err := h.registry.FindRelated(ctx, owner, id, widget.Source, domain.FindManyArgs{})
	if err != nil {
		return gridView{}, err
	}

	for _, record := range related {
		values := toMap(record)
		row := make([]fieldView, 0, len(widget.Columns))
		for _, column := range widget.Columns {
			cell := h.fieldView(ctx, column, values)
			if column.Source == "id" {
				cell.Href = "/admin/" + widget.Reference + "/" + cell.Text
			}
			row = append(row, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Failed to render admin template", "template", name, "error", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.render(w, http.StatusNotFound, "error.html", err.Error())
		return
	}

	h.logger.Error("Admin request failed", "error", err)
	h.render(w, http.StatusInternalServerError, "error.html", "Internal server error")
}

// toMap usa a forma JSON do registro, a mesma devolvida pela API.
func toMap(record any) map[string]any {
	data, err := json.Marshal(record)
	if err != nil {
		return map[string]any{}
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return map[string]any{}
	}
	return values
}

func formatDate(value any) string {
	text, ok := value.(string)
	if !ok {
		return displayValue(value)
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return text
	}
	return t.Format("2006-01-02")
}
