package tools

import (
	"context"
	"fmt"
	"sort"

	"bank-assistant/internal/catalog"
)

// Tool: вызываемый инструмент.
type Tool interface {
	Spec() Spec
	Call(ctx context.Context, args Args) (string, error)
}

type funcTool struct {
	spec Spec
	fn   func(ctx context.Context, args Args) (string, error)
}

func (t funcTool) Spec() Spec { return t.spec }

func (t funcTool) Call(ctx context.Context, args Args) (string, error) {
	return t.fn(ctx, args)
}

// newTool связывает обработчик с описанием из таблицы specs.
func newTool(id ID, fn func(ctx context.Context, args Args) (string, error)) Tool {
	spec, ok := SpecFor(string(id))
	if !ok {
		panic(fmt.Sprintf("tools: no spec for %q", id))
	}
	return funcTool{spec: spec, fn: fn}
}

// Registry: статический набор инструментов, собирается один раз при старте.
type Registry struct {
	tools map[ID]Tool
	order []ID
}

func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[ID]Tool, len(tools))}
	for _, t := range tools {
		id := t.Spec().ID
		if _, dup := r.tools[id]; dup {
			return nil, fmt.Errorf("tool %q registered twice", id)
		}
		r.tools[id] = t
		r.order = append(r.order, id)
	}
	return r, nil
}

// Lookup ищет инструмент по точному имени.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[ID(name)]
	return t, ok
}

// Specs возвращает описания зарегистрированных инструментов в порядке регистрации.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id].Spec())
	}
	return out
}

// FilterArgs оставляет только аргументы из allow-list инструмента.
// Для неизвестного имени отбрасывается всё. dropped отсортирован.
func (r *Registry) FilterArgs(name string, args map[string]any) (kept Args, dropped []string) {
	kept = make(Args, len(args))
	t, ok := r.Lookup(name)
	for k, v := range args {
		if ok && t.Spec().Allows(k) {
			kept[k] = v
			continue
		}
		dropped = append(dropped, k)
	}
	sort.Strings(dropped)
	return kept, dropped
}

// Build собирает полный реестр: личные и справочные инструменты.
func Build(q Queries, t Transfers, c *catalog.Catalog) (*Registry, error) {
	return NewRegistry(append(PersonalTools(q, t), CatalogTools(c)...)...)
}
