package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pettrack/console/client"
)

// Column describes one list-view column. Options, when set, maps raw
// values to display labels.
type Column struct {
	Key     string
	Label   string
	Options map[string]string
}

// Field describes one form input
type Field struct {
	Key      string
	Label    string
	Type     string // text, number, date, datetime, select, textarea, checkbox
	Options  map[string]string
	Required bool
}

// ResourcePage is the static page descriptor for one entity collection
type ResourcePage struct {
	Slug     string
	Title    string
	Singular string
	Columns  []Column
	Fields   []Field
}

// ResourceController renders the generic list and form pages for one
// entity collection, proxying all data operations to the API.
type ResourceController struct {
	Page    ResourcePage
	Service *client.Resource[map[string]any]
	Session SessionReader
	Logger  Logger
}

// SessionReader is the session surface the resource pages consult when
// rendering chrome.
type SessionReader interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

func NewResourceController(page ResourcePage, service *client.Resource[map[string]any], state SessionReader, logger Logger) *ResourceController {
	if logger == nil {
		logger = defLogger{}
	}
	return &ResourceController{
		Page:    page,
		Service: service,
		Session: state,
		Logger:  logger,
	}
}

type listRow struct {
	ID    string
	Cells []string
}

type formOption struct {
	Value    string
	Label    string
	Selected bool
}

type formField struct {
	Key      string
	Label    string
	Type     string
	Required bool
	Value    string
	Options  []formOption
}

// ListShow renders the collection table
func (rc *ResourceController) ListShow(c *fiber.Ctx) error {
	records, err := rc.Service.List(c.UserContext())
	if err != nil {
		rc.Logger.Error("list %s: %v", rc.Page.Slug, err)
		return rc.render(c, "resource_list", fiber.Map{
			"errors": map[string]string{"load": "Não foi possível carregar os registros"},
			"rows":   []listRow{},
		})
	}

	rows := make([]listRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, listRow{
			ID:    stringValue(record["id"]),
			Cells: rc.cells(record),
		})
	}

	return rc.render(c, "resource_list", fiber.Map{
		"rows": rows,
	})
}

// NewShow renders an empty form
func (rc *ResourceController) NewShow(c *fiber.Ctx) error {
	return rc.render(c, "resource_form", fiber.Map{
		"fields": rc.formFields(nil),
		"action": fmt.Sprintf("/%s", rc.Page.Slug),
	})
}

// CreateSubmit validates and posts a new record
func (rc *ResourceController) CreateSubmit(c *fiber.Ctx) error {
	record := rc.parseForm(c)

	if errs := rc.requiredErrors(record); len(errs) > 0 {
		return rc.render(c, "resource_form", fiber.Map{
			"validation": errs,
			"fields":     rc.formFields(record),
			"action":     fmt.Sprintf("/%s", rc.Page.Slug),
		})
	}

	if err := rc.Service.Create(c.UserContext(), record); err != nil {
		rc.Logger.Error("create %s: %v", rc.Page.Slug, err)
		return rc.render(c, "resource_form", fiber.Map{
			"errors": map[string]string{"save": "Não foi possível salvar o registro"},
			"fields": rc.formFields(record),
			"action": fmt.Sprintf("/%s", rc.Page.Slug),
		})
	}

	setFlash(c, "success", rc.Page.Singular+" criado")
	return c.Redirect("/"+rc.Page.Slug, fiber.StatusSeeOther)
}

// EditShow renders the form loaded with an existing record
func (rc *ResourceController) EditShow(c *fiber.Ctx) error {
	id := c.Params("id")

	record, err := rc.Service.Get(c.UserContext(), id)
	if err != nil {
		rc.Logger.Error("get %s/%s: %v", rc.Page.Slug, id, err)
		setFlash(c, "error", "Registro não encontrado")
		return c.Redirect("/"+rc.Page.Slug, fiber.StatusSeeOther)
	}

	return rc.render(c, "resource_form", fiber.Map{
		"fields": rc.formFields(*record),
		"action": fmt.Sprintf("/%s/%s", rc.Page.Slug, id),
	})
}

// UpdateSubmit merges the form into the stored record and replaces it
func (rc *ResourceController) UpdateSubmit(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := rc.Service.Get(c.UserContext(), id)
	if err != nil {
		rc.Logger.Error("get %s/%s: %v", rc.Page.Slug, id, err)
		setFlash(c, "error", "Registro não encontrado")
		return c.Redirect("/"+rc.Page.Slug, fiber.StatusSeeOther)
	}

	record := *existing
	for key, value := range rc.parseForm(c) {
		record[key] = value
	}

	if errs := rc.requiredErrors(record); len(errs) > 0 {
		return rc.render(c, "resource_form", fiber.Map{
			"validation": errs,
			"fields":     rc.formFields(record),
			"action":     fmt.Sprintf("/%s/%s", rc.Page.Slug, id),
		})
	}

	if err := rc.Service.Update(c.UserContext(), id, record); err != nil {
		rc.Logger.Error("update %s/%s: %v", rc.Page.Slug, id, err)
		return rc.render(c, "resource_form", fiber.Map{
			"errors": map[string]string{"save": "Não foi possível salvar o registro"},
			"fields": rc.formFields(record),
			"action": fmt.Sprintf("/%s/%s", rc.Page.Slug, id),
		})
	}

	setFlash(c, "success", rc.Page.Singular+" atualizado")
	return c.Redirect("/"+rc.Page.Slug, fiber.StatusSeeOther)
}

// DeleteSubmit removes a record and returns to the list
func (rc *ResourceController) DeleteSubmit(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := rc.Service.Delete(c.UserContext(), id); err != nil {
		rc.Logger.Error("delete %s/%s: %v", rc.Page.Slug, id, err)
		setFlash(c, "error", "Não foi possível excluir o registro")
	} else {
		setFlash(c, "success", rc.Page.Singular+" excluído")
	}

	return c.Redirect("/"+rc.Page.Slug, fiber.StatusSeeOther)
}

func (rc *ResourceController) render(c *fiber.Ctx, view string, data fiber.Map) error {
	data["page"] = rc.Page
	data["columns"] = rc.Page.Columns
	data["is_authenticated"] = rc.Session.IsAuthenticated()
	data["is_admin"] = rc.Session.IsAdmin()

	if flash := consumeFlash(c); flash != nil {
		data["flash"] = flash
	}

	return c.Render(view, data)
}

// parseForm builds a record from the submitted form values. Dotted
// field keys ("message.temperature") address one level of nesting.
func (rc *ResourceController) parseForm(c *fiber.Ctx) map[string]any {
	record := map[string]any{}

	for _, f := range rc.Page.Fields {
		raw := c.FormValue(f.Key)

		var value any
		switch f.Type {
		case "number":
			if raw == "" {
				continue
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			value = n
		case "checkbox":
			value = raw == "on" || raw == "true"
		default:
			if raw == "" {
				continue
			}
			value = raw
		}

		setPath(record, f.Key, value)
	}

	return record
}

func (rc *ResourceController) requiredErrors(record map[string]any) map[string]string {
	errs := map[string]string{}
	for _, f := range rc.Page.Fields {
		if !f.Required {
			continue
		}
		if _, ok := getPath(record, f.Key); !ok {
			errs[f.Key] = f.Label + " é obrigatório"
		}
	}
	return errs
}

func (rc *ResourceController) cells(record map[string]any) []string {
	cells := make([]string, 0, len(rc.Page.Columns))
	for _, col := range rc.Page.Columns {
		value, _ := getPath(record, col.Key)
		cell := stringValue(value)
		if col.Options != nil {
			if label, ok := col.Options[cell]; ok {
				cell = label
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

func (rc *ResourceController) formFields(record map[string]any) []formField {
	fields := make([]formField, 0, len(rc.Page.Fields))
	for _, f := range rc.Page.Fields {
		var current string
		if record != nil {
			if value, ok := getPath(record, f.Key); ok {
				current = stringValue(value)
			}
		}

		field := formField{
			Key:      f.Key,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
			Value:    current,
		}

		for value, label := range f.Options {
			field.Options = append(field.Options, formOption{
				Value:    value,
				Label:    label,
				Selected: value == current,
			})
		}

		fields = append(fields, field)
	}
	return fields
}

func setPath(record map[string]any, key string, value any) {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		record[key] = value
		return
	}

	child, ok := record[head].(map[string]any)
	if !ok {
		child = map[string]any{}
		record[head] = child
	}
	setPath(child, rest, value)
}

func getPath(record map[string]any, key string) (any, bool) {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		value, ok := record[key]
		return value, ok
	}

	child, ok := record[head].(map[string]any)
	if !ok {
		return nil, false
	}
	return getPath(child, rest)
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "Sim"
		}
		return "Não"
	default:
		return fmt.Sprintf("%v", v)
	}
}
